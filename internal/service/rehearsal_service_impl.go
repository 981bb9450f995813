package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
	"github.com/pruizcastillo-design/Oposecurity/internal/repository"
	"github.com/pruizcastillo-design/Oposecurity/internal/scoring"
)

type rehearsalService struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session

	alphabet domain.Alphabet
	keys     repository.AnswerKeyRepo
	observer UseCaseObserver
}

// NewRehearsalService creates an in-memory session registry. keys may be nil,
// in which case ApplyAnswerKey always fails.
func NewRehearsalService(alphabet domain.Alphabet, keys repository.AnswerKeyRepo, observers ...UseCaseObserver) RehearsalService {
	return &rehearsalService{
		sessions: map[string]*domain.Session{},
		alphabet: alphabet,
		keys:     keys,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *rehearsalService) Start(ctx context.Context, req StartRequest) (sess *domain.Session, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"questions": req.QuestionCount,
		"divisor":   req.ErrorDivisor,
	}
	defer func() {
		if sess != nil {
			fields["session"] = sess.ID()
		}
		observe(ctx, s.observer, "start-rehearsal", startedAt, err, fields)
	}()

	alphabet := s.alphabet
	if len(req.Options) > 0 {
		if alphabet, err = domain.NewAlphabet(req.Options...); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := req.SessionID
	if id == "" {
		id = uuid.New().String()
	} else if existing, ok := s.sessions[id]; ok && existing.Phase() != domain.PhaseSetup {
		return nil, fmt.Errorf("%w: rehearsal %s is in %s", domain.ErrInvalidTransition, id, existing.Phase())
	}

	fresh := domain.NewSession(id, alphabet)
	if err = fresh.Start(req.QuestionCount, req.ErrorDivisor); err != nil {
		return nil, err
	}
	s.sessions[id] = fresh
	return fresh.Clone(), nil
}

func (s *rehearsalService) Get(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return sess.Clone(), nil
}

func (s *rehearsalService) SetConfidence(ctx context.Context, id string, i int, c domain.Confidence) (*domain.Session, error) {
	return s.mutate(ctx, "set-confidence", id, map[string]any{"question": i, "tier": c},
		func(sess *domain.Session) error { return sess.SetConfidence(i, c) })
}

func (s *rehearsalService) MarkInitial(ctx context.Context, id string, i int, o domain.Option) (*domain.Session, error) {
	return s.mutate(ctx, "mark-initial", id, map[string]any{"question": i, "option": o},
		func(sess *domain.Session) error { return sess.MarkInitial(i, o) })
}

func (s *rehearsalService) SetFinal(ctx context.Context, id string, i int, o domain.Option) (*domain.Session, error) {
	return s.mutate(ctx, "set-final", id, map[string]any{"question": i, "option": o},
		func(sess *domain.Session) error { return sess.SetFinal(i, o) })
}

func (s *rehearsalService) SetCorrect(ctx context.Context, id string, i int, o domain.Option) (*domain.Session, error) {
	return s.mutate(ctx, "set-correct", id, map[string]any{"question": i, "option": o},
		func(sess *domain.Session) error { return sess.SetCorrect(i, o) })
}

func (s *rehearsalService) ApplyAnswerKey(ctx context.Context, id string, keyName string) (*domain.Session, error) {
	fields := map[string]any{"key": keyName}
	if s.keys == nil {
		err := fmt.Errorf("no answer-key library configured")
		observe(ctx, s.observer, "apply-answer-key", time.Now().UTC(), err, fields)
		return nil, err
	}
	key, err := s.keys.GetByName(ctx, keyName)
	if err != nil {
		observe(ctx, s.observer, "apply-answer-key", time.Now().UTC(), err, fields)
		return nil, fmt.Errorf("loading answer key %q: %w", keyName, err)
	}
	return s.mutate(ctx, "apply-answer-key", id, fields,
		func(sess *domain.Session) error { return sess.ApplyKey(key.Answers) })
}

func (s *rehearsalService) Advance(ctx context.Context, id string) (*domain.Session, error) {
	return s.mutate(ctx, "advance", id, nil, (*domain.Session).Advance)
}

func (s *rehearsalService) Retreat(ctx context.Context, id string) (*domain.Session, error) {
	return s.mutate(ctx, "retreat", id, nil, (*domain.Session).Retreat)
}

func (s *rehearsalService) Jump(ctx context.Context, id string, i int) (*domain.Session, error) {
	return s.mutate(ctx, "jump", id, map[string]any{"question": i},
		func(sess *domain.Session) error { return sess.Jump(i) })
}

func (s *rehearsalService) FinishPhase(ctx context.Context, id string) (*domain.Session, error) {
	return s.mutate(ctx, "finish-phase", id, nil, (*domain.Session).FinishPhase)
}

func (s *rehearsalService) Abort(ctx context.Context, id string) (*domain.Session, error) {
	return s.mutate(ctx, "abort", id, nil, (*domain.Session).Abort)
}

func (s *rehearsalService) Stats(ctx context.Context, id string) (st scoring.Stats, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"session": id}
	defer func() {
		if err == nil {
			fields["net_score"] = st.NetScore
			fields["self_reliability"] = st.SelfReliability
		}
		observe(ctx, s.observer, "compute-stats", startedAt, err, fields)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookup(id)
	if err != nil {
		return scoring.Stats{}, err
	}
	if sess.Phase() != domain.PhaseResults {
		return scoring.Stats{}, fmt.Errorf("%w: results are available after correction, rehearsal is in %s",
			domain.ErrInvalidTransition, sess.Phase())
	}
	return scoring.Compute(sess), nil
}

func (s *rehearsalService) Close(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.lookup(id); err != nil {
		return err
	}
	delete(s.sessions, id)
	return nil
}

// mutate runs fn against the stored session under the registry lock and
// returns a snapshot of the result.
func (s *rehearsalService) mutate(ctx context.Context, name, id string, fields map[string]any, fn func(*domain.Session) error) (snap *domain.Session, err error) {
	startedAt := time.Now().UTC()
	if fields == nil {
		fields = map[string]any{}
	}
	fields["session"] = id
	defer func() {
		if snap != nil {
			fields["phase"] = snap.Phase()
			fields["cursor"] = snap.Cursor()
		}
		observe(ctx, s.observer, name, startedAt, err, fields)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if err = fn(sess); err != nil {
		return nil, err
	}
	return sess.Clone(), nil
}

func (s *rehearsalService) lookup(id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("rehearsal %s: %w", id, ErrSessionNotFound)
	}
	return sess, nil
}

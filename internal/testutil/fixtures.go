package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
)

var testKeyCounter atomic.Int64

// Answer key options
type AnswerKeyOption func(*domain.AnswerKey)

func WithAnswers(answers ...domain.Option) AnswerKeyOption {
	return func(k *domain.AnswerKey) {
		k.Answers = answers
	}
}

func WithCreatedAt(t time.Time) AnswerKeyOption {
	return func(k *domain.AnswerKey) {
		k.CreatedAt = t
	}
}

// NewTestAnswerKey returns a four-answer key. An empty name gets a unique
// generated one.
func NewTestAnswerKey(name string, opts ...AnswerKeyOption) *domain.AnswerKey {
	if name == "" {
		name = fmt.Sprintf("key-%02d", testKeyCounter.Add(1))
	}
	k := &domain.AnswerKey{
		ID:        uuid.New().String(),
		Name:      name,
		Answers:   []domain.Option{"A", "B", "C", "D"},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// NewTestSession starts an n-question session over A-D with divisor 4.
func NewTestSession(t *testing.T, n int) *domain.Session {
	t.Helper()
	s, err := domain.StartSession(domain.DefaultAlphabet(), n, 4)
	if err != nil {
		t.Fatalf("starting session: %v", err)
	}
	return s
}

// DriveToCorrection takes a fresh TESTING session into CORRECTION. A
// non-blank finals[i] is marked GREEN on that option; a blank one is left RED
// and unanswered.
func DriveToCorrection(t *testing.T, s *domain.Session, finals []domain.Option) {
	t.Helper()
	if len(finals) != s.QuestionCount() {
		t.Fatalf("got %d finals for %d questions", len(finals), s.QuestionCount())
	}
	for i, f := range finals {
		must(t, s.Jump(i))
		if f == domain.Blank {
			must(t, s.SetConfidence(i, domain.ConfidenceRed))
			continue
		}
		must(t, s.SetConfidence(i, domain.ConfidenceGreen))
		must(t, s.MarkInitial(i, f))
	}
	must(t, s.Jump(s.QuestionCount()-1))
	must(t, s.FinishPhase())
	must(t, s.Jump(s.QuestionCount()-1))
	must(t, s.FinishPhase())
	if s.Phase() != domain.PhaseCorrection {
		t.Fatalf("expected CORRECTION, got %s", s.Phase())
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pruizcastillo-design/Oposecurity/internal/db"
	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
	"github.com/pruizcastillo-design/Oposecurity/internal/importer"
	"github.com/pruizcastillo-design/Oposecurity/internal/repository"
)

type answerKeyService struct {
	keys     repository.AnswerKeyRepo
	uow      db.UnitOfWork
	alphabet domain.Alphabet
	observer UseCaseObserver
}

// NewAnswerKeyService validates keys saved directly against alphabet;
// imported files may declare their own options.
func NewAnswerKeyService(keys repository.AnswerKeyRepo, uow db.UnitOfWork, alphabet domain.Alphabet, observers ...UseCaseObserver) AnswerKeyService {
	return &answerKeyService{
		keys:     keys,
		uow:      uow,
		alphabet: alphabet,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *answerKeyService) Save(ctx context.Context, k *domain.AnswerKey, replace bool) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"key": k.Name, "answers": len(k.Answers), "replace": replace}
	defer func() { observe(ctx, s.observer, "save-answer-key", startedAt, err, fields) }()

	if err = k.Validate(s.alphabet); err != nil {
		return err
	}
	return s.store(ctx, k, replace)
}

func (s *answerKeyService) Import(ctx context.Context, path, name string, replace bool) (key *domain.AnswerKey, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"path": path, "replace": replace}
	defer func() {
		if key != nil {
			fields["key"] = key.Name
			fields["answers"] = len(key.Answers)
		}
		observe(ctx, s.observer, "import-answer-key", startedAt, err, fields)
	}()

	f, err := importer.LoadKeyFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading key file: %w", err)
	}
	if name != "" {
		f.Name = name
	}
	if errs := importer.ValidateKeyFile(f); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidConfiguration, errors.Join(errs...))
	}
	key, err = importer.ConvertKey(f)
	if err != nil {
		return nil, err
	}
	if err = s.store(ctx, key, replace); err != nil {
		return nil, err
	}
	return key, nil
}

// store writes k in one transaction, first removing a same-named key when
// replace is set.
func (s *answerKeyService) store(ctx context.Context, k *domain.AnswerKey, replace bool) error {
	if k.ID == "" {
		k.ID = uuid.New().String()
	}
	if k.CreatedAt.IsZero() {
		k.CreatedAt = time.Now().UTC()
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txKeys := repository.NewSQLiteAnswerKeyRepo(tx)

		existing, err := txKeys.GetByName(ctx, k.Name)
		switch {
		case errors.Is(err, repository.ErrNotFound):
		case err != nil:
			return err
		case !replace:
			return fmt.Errorf("answer key %q: %w", k.Name, repository.ErrDuplicateName)
		default:
			if err := txKeys.Delete(ctx, existing.ID); err != nil {
				return err
			}
		}
		return txKeys.Create(ctx, k)
	})
}

func (s *answerKeyService) Get(ctx context.Context, name string) (*domain.AnswerKey, error) {
	return s.keys.GetByName(ctx, name)
}

func (s *answerKeyService) List(ctx context.Context) ([]*domain.AnswerKey, error) {
	return s.keys.List(ctx)
}

func (s *answerKeyService) Delete(ctx context.Context, name string) (err error) {
	startedAt := time.Now().UTC()
	defer func() { observe(ctx, s.observer, "delete-answer-key", startedAt, err, map[string]any{"key": name}) }()

	k, err := s.keys.GetByName(ctx, name)
	if err != nil {
		return err
	}
	return s.keys.Delete(ctx, k.ID)
}

package service

import (
	"context"
	"errors"

	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
	"github.com/pruizcastillo-design/Oposecurity/internal/scoring"
)

// ErrSessionNotFound is returned for an unknown rehearsal ID.
var ErrSessionNotFound = errors.New("rehearsal not found")

// StartRequest configures a new rehearsal. An empty SessionID gets a fresh
// one; naming an aborted session restarts it under the same ID. Empty
// Options use the service's configured alphabet.
type StartRequest struct {
	SessionID     string
	QuestionCount int
	ErrorDivisor  int
	Options       []string
}

// RehearsalService owns live rehearsal sessions. Every call returns an
// independent snapshot of the session after the operation; a failed call
// leaves the stored session unchanged.
type RehearsalService interface {
	Start(ctx context.Context, req StartRequest) (*domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, error)

	SetConfidence(ctx context.Context, id string, i int, c domain.Confidence) (*domain.Session, error)
	MarkInitial(ctx context.Context, id string, i int, o domain.Option) (*domain.Session, error)
	SetFinal(ctx context.Context, id string, i int, o domain.Option) (*domain.Session, error)
	SetCorrect(ctx context.Context, id string, i int, o domain.Option) (*domain.Session, error)
	ApplyAnswerKey(ctx context.Context, id string, keyName string) (*domain.Session, error)

	Advance(ctx context.Context, id string) (*domain.Session, error)
	Retreat(ctx context.Context, id string) (*domain.Session, error)
	Jump(ctx context.Context, id string, i int) (*domain.Session, error)
	FinishPhase(ctx context.Context, id string) (*domain.Session, error)
	Abort(ctx context.Context, id string) (*domain.Session, error)

	// Stats scores a session that has reached RESULTS.
	Stats(ctx context.Context, id string) (scoring.Stats, error)
	// Close forgets a session.
	Close(ctx context.Context, id string) error
}

// AnswerKeyService manages the answer-key library.
type AnswerKeyService interface {
	// Save stores k, replacing a key of the same name when replace is set.
	Save(ctx context.Context, k *domain.AnswerKey, replace bool) error
	// Import reads a JSON or YAML key file. A non-empty name overrides the
	// file's own.
	Import(ctx context.Context, path, name string, replace bool) (*domain.AnswerKey, error)
	Get(ctx context.Context, name string) (*domain.AnswerKey, error)
	List(ctx context.Context) ([]*domain.AnswerKey, error)
	Delete(ctx context.Context, name string) error
}

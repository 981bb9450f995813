package repository

import (
	"context"

	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
)

// AnswerKeyRepo stores named answer keys. Keys are immutable once created;
// replacing one means Delete then Create.
type AnswerKeyRepo interface {
	Create(ctx context.Context, k *domain.AnswerKey) error
	GetByID(ctx context.Context, id string) (*domain.AnswerKey, error)
	GetByName(ctx context.Context, name string) (*domain.AnswerKey, error)
	List(ctx context.Context) ([]*domain.AnswerKey, error)
	Delete(ctx context.Context, id string) error
}

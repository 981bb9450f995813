package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
)

// ConvertKey turns a validated KeyFile into a domain answer key with a
// fresh ID. Answers are normalized to the alphabet's labels.
func ConvertKey(f *KeyFile) (*domain.AnswerKey, error) {
	alphabet, err := f.Alphabet()
	if err != nil {
		return nil, err
	}
	answers := make([]domain.Option, len(f.Answers))
	for i, a := range f.Answers {
		o, ok := alphabet.Lookup(a)
		if !ok {
			return nil, fmt.Errorf("answers[%d]: %w: %q", i, domain.ErrInvalidOption, a)
		}
		answers[i] = o
	}
	return &domain.AnswerKey{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(f.Name),
		Answers:   answers,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// KeyFileFrom renders a stored key back into its file form.
func KeyFileFrom(k *domain.AnswerKey) *KeyFile {
	f := &KeyFile{Name: k.Name, Answers: make([]string, len(k.Answers))}
	for i, a := range k.Answers {
		f.Answers[i] = string(a)
	}
	return f
}

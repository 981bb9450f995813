package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerKey_ValidateName(t *testing.T) {
	valid := []string{"mock-1", "policia_2024", "A", "exam.v2"}
	for _, name := range valid {
		k := &AnswerKey{Name: name}
		assert.NoError(t, k.ValidateName(), name)
	}

	invalid := []string{"", "-leading", "has space", "slash/name"}
	for _, name := range invalid {
		k := &AnswerKey{Name: name}
		assert.Error(t, k.ValidateName(), name)
	}
}

func TestAnswerKey_Validate(t *testing.T) {
	k := &AnswerKey{Name: "mock", Answers: []Option{"A", "D", "B"}}
	require.NoError(t, k.Validate(DefaultAlphabet()))

	k.Answers = append(k.Answers, "F")
	err := k.Validate(DefaultAlphabet())
	require.ErrorIs(t, err, ErrInvalidOption)
	assert.Contains(t, err.Error(), "answer 4")

	empty := &AnswerKey{Name: "mock"}
	assert.ErrorIs(t, empty.Validate(DefaultAlphabet()), ErrInvalidConfiguration)
}

func TestAnswerKey_Compact(t *testing.T) {
	k := &AnswerKey{Answers: []Option{"A", "C", "B"}}
	assert.Equal(t, "ACB", k.Compact())

	k = &AnswerKey{Answers: []Option{"A1", "B2"}}
	assert.Equal(t, "A1,B2", k.Compact())
}

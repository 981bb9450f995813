package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var keyNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// AnswerKey is a stored list of correct answers, one per question, that can
// be applied in bulk during CORRECTION.
type AnswerKey struct {
	ID        string
	Name      string
	Answers   []Option
	CreatedAt time.Time
}

// ValidateName checks that Name is a short slug usable on the command line
// (letters, digits, dot, dash, underscore; up to 64 characters).
func (k *AnswerKey) ValidateName() error {
	if k.Name == "" {
		return fmt.Errorf("answer key name is required")
	}
	if !keyNamePattern.MatchString(k.Name) {
		return fmt.Errorf("answer key name %q must be 1-64 letters, digits, '.', '-' or '_'", k.Name)
	}
	return nil
}

// Validate checks the name and that every answer belongs to alphabet.
func (k *AnswerKey) Validate(alphabet Alphabet) error {
	if err := k.ValidateName(); err != nil {
		return err
	}
	if len(k.Answers) == 0 {
		return fmt.Errorf("%w: answer key %q has no answers", ErrInvalidConfiguration, k.Name)
	}
	for i, a := range k.Answers {
		if err := alphabet.checkOption(a); err != nil {
			return fmt.Errorf("answer %d: %w", i+1, err)
		}
	}
	return nil
}

// Compact renders the answers as a single string such as "ACDB…", or
// comma-separated when any label is longer than one character.
func (k *AnswerKey) Compact() string {
	parts := make([]string, len(k.Answers))
	sep := ""
	for i, a := range k.Answers {
		parts[i] = string(a)
		if len(a) > 1 {
			sep = ","
		}
	}
	return strings.Join(parts, sep)
}

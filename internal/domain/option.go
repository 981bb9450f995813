package domain

import (
	"fmt"
	"strings"
)

// Option is one answer label of a multiple-choice question, e.g. "A".
// The zero value is Blank: no answer.
type Option string

// Blank marks the absence of a selection.
const Blank Option = ""

// IsBlank reports whether o carries no answer.
func (o Option) IsBlank() bool { return o == Blank }

// String renders Blank as "-" so tables stay aligned.
func (o Option) String() string {
	if o == Blank {
		return "-"
	}
	return string(o)
}

// DefaultOptions is the four-letter alphabet of the paper tests this tool
// rehearses.
var DefaultOptions = []string{"A", "B", "C", "D"}

// Alphabet is the fixed, ordered set of option labels for a session.
type Alphabet struct {
	labels []Option
}

// NewAlphabet builds an alphabet from the given labels. Labels are trimmed;
// an empty label or an empty list is a configuration error. Uniqueness is
// not checked.
func NewAlphabet(labels ...string) (Alphabet, error) {
	if len(labels) == 0 {
		return Alphabet{}, fmt.Errorf("%w: option alphabet is empty", ErrInvalidConfiguration)
	}
	out := make([]Option, 0, len(labels))
	for i, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			return Alphabet{}, fmt.Errorf("%w: option %d has an empty label", ErrInvalidConfiguration, i+1)
		}
		out = append(out, Option(l))
	}
	return Alphabet{labels: out}, nil
}

// MustAlphabet is NewAlphabet for package-level defaults and tests.
func MustAlphabet(labels ...string) Alphabet {
	a, err := NewAlphabet(labels...)
	if err != nil {
		panic(err)
	}
	return a
}

// DefaultAlphabet returns the A-D alphabet.
func DefaultAlphabet() Alphabet {
	return MustAlphabet(DefaultOptions...)
}

// Options returns a copy of the labels in order.
func (a Alphabet) Options() []Option {
	return append([]Option(nil), a.labels...)
}

// Len returns the number of labels.
func (a Alphabet) Len() int { return len(a.labels) }

// At returns the label at position i, or Blank if i is out of range.
func (a Alphabet) At(i int) Option {
	if i < 0 || i >= len(a.labels) {
		return Blank
	}
	return a.labels[i]
}

// Contains reports whether o is one of the labels. Blank is never contained.
func (a Alphabet) Contains(o Option) bool {
	if o == Blank {
		return false
	}
	for _, l := range a.labels {
		if l == o {
			return true
		}
	}
	return false
}

// Lookup resolves a user-typed label, ignoring case and surrounding space.
func (a Alphabet) Lookup(s string) (Option, bool) {
	s = strings.TrimSpace(s)
	for _, l := range a.labels {
		if strings.EqualFold(string(l), s) {
			return l, true
		}
	}
	return Blank, false
}

// Strings returns the labels as plain strings.
func (a Alphabet) Strings() []string {
	out := make([]string, len(a.labels))
	for i, l := range a.labels {
		out[i] = string(l)
	}
	return out
}

func (a Alphabet) String() string {
	return strings.Join(a.Strings(), ",")
}

// checkOption validates that o belongs to the alphabet.
func (a Alphabet) checkOption(o Option) error {
	if !a.Contains(o) {
		return fmt.Errorf("%w: %q is not one of %s", ErrInvalidOption, string(o), a.String())
	}
	return nil
}

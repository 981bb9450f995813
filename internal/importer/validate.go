package importer

import (
	"fmt"
	"strings"

	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
)

// ValidateKeyFile checks an answer key file before conversion and returns
// every problem found.
func ValidateKeyFile(f *KeyFile) []error {
	var errs []error

	k := domain.AnswerKey{Name: strings.TrimSpace(f.Name)}
	if err := k.ValidateName(); err != nil {
		errs = append(errs, fmt.Errorf("name: %w", err))
	}

	alphabet, err := f.Alphabet()
	if err != nil {
		return append(errs, fmt.Errorf("options: %w", err))
	}
	if len(f.Answers) == 0 {
		errs = append(errs, fmt.Errorf("answers: at least one answer is required"))
	}
	for i, a := range f.Answers {
		if _, ok := alphabet.Lookup(a); !ok {
			errs = append(errs, fmt.Errorf("answers[%d]: %q is not one of %s", i, a, alphabet))
		}
	}
	return errs
}

// ValidateSheetFile checks an answer sheet before replay and returns every
// problem found. Row numbers in messages are 1-based question numbers.
func ValidateSheetFile(f *SheetFile) []error {
	var errs []error

	alphabet, err := f.Alphabet()
	if err != nil {
		return []error{fmt.Errorf("options: %w", err)}
	}
	if f.ErrorDivisor < 0 {
		errs = append(errs, fmt.Errorf("error_divisor: must be >= 1, got %d", f.ErrorDivisor))
	}
	if len(f.Questions) == 0 {
		errs = append(errs, fmt.Errorf("questions: at least one question is required"))
	}
	for i := range f.Questions {
		errs = append(errs, validateSheetQuestion(i+1, &f.Questions[i], alphabet)...)
	}
	return errs
}

func validateSheetQuestion(n int, q *SheetQuestion, alphabet domain.Alphabet) []error {
	var errs []error
	prefix := fmt.Sprintf("question %d", n)

	tier, ok := domain.ParseConfidence(q.Confidence)
	switch {
	case !ok:
		errs = append(errs, fmt.Errorf("%s: unknown confidence %q", prefix, q.Confidence))
	case tier == domain.ConfidenceNone:
		errs = append(errs, fmt.Errorf("%s: confidence is required", prefix))
	}

	seen := map[domain.Option]bool{}
	for _, s := range q.Initial {
		o, ok := alphabet.Lookup(s)
		if !ok {
			errs = append(errs, fmt.Errorf("%s: initial %q is not one of %s", prefix, s, alphabet))
			continue
		}
		if seen[o] {
			errs = append(errs, fmt.Errorf("%s: initial %q listed twice", prefix, s))
		}
		seen[o] = true
	}

	if q.Final != "" {
		if _, ok := alphabet.Lookup(q.Final); !ok {
			errs = append(errs, fmt.Errorf("%s: final %q is not one of %s", prefix, q.Final, alphabet))
		}
	}
	if q.Correct == "" {
		errs = append(errs, fmt.Errorf("%s: correct answer is required", prefix))
	} else if _, ok := alphabet.Lookup(q.Correct); !ok {
		errs = append(errs, fmt.Errorf("%s: correct %q is not one of %s", prefix, q.Correct, alphabet))
	}

	switch tier {
	case domain.ConfidenceGreen:
		initial := q.Initial
		if len(initial) == 0 && q.Final != "" {
			initial = []string{q.Final}
		}
		if len(initial) != 1 {
			errs = append(errs, fmt.Errorf("%s: GREEN needs exactly 1 initial option, got %d", prefix, len(initial)))
		} else if q.Final != "" && !strings.EqualFold(strings.TrimSpace(q.Final), strings.TrimSpace(initial[0])) {
			errs = append(errs, fmt.Errorf("%s: GREEN final %q differs from initial %q", prefix, q.Final, initial[0]))
		}
	case domain.ConfidenceYellow:
		if len(q.Initial) != 2 {
			errs = append(errs, fmt.Errorf("%s: YELLOW needs exactly 2 initial options, got %d", prefix, len(q.Initial)))
		}
	case domain.ConfidenceRed:
		if len(q.Initial) > 0 {
			errs = append(errs, fmt.Errorf("%s: RED takes no initial options", prefix))
		}
	}
	return errs
}

package importer

import (
	"errors"
	"fmt"

	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
)

// ReplaySheet validates f and walks it through a fresh session: testing,
// refinement, consolidation and correction, in that order. The returned
// session is in RESULTS. A zero ErrorDivisor falls back to fallbackDivisor.
func ReplaySheet(f *SheetFile, fallbackDivisor int) (*domain.Session, error) {
	if errs := ValidateSheetFile(f); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidConfiguration, errors.Join(errs...))
	}
	alphabet, err := f.Alphabet()
	if err != nil {
		return nil, err
	}
	divisor := f.ErrorDivisor
	if divisor == 0 {
		divisor = fallbackDivisor
	}

	s, err := domain.StartSession(alphabet, len(f.Questions), divisor)
	if err != nil {
		return nil, err
	}

	for i, row := range f.Questions {
		if err := replayTesting(s, i, row); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		if err := s.Advance(); err != nil {
			return nil, err
		}
	}
	for i, row := range f.Questions {
		if q, _ := s.Question(i); q.Confidence != domain.ConfidenceGreen && row.Final != "" {
			o, _ := alphabet.Lookup(row.Final)
			if err := s.SetFinal(i, o); err != nil {
				return nil, fmt.Errorf("question %d: %w", i+1, err)
			}
		}
		if err := s.Advance(); err != nil {
			return nil, err
		}
	}
	for i, row := range f.Questions {
		o, _ := alphabet.Lookup(row.Correct)
		if err := s.SetCorrect(i, o); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		if err := s.Advance(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func replayTesting(s *domain.Session, i int, row SheetQuestion) error {
	tier, _ := domain.ParseConfidence(row.Confidence)
	if err := s.SetConfidence(i, tier); err != nil {
		return err
	}
	initial := row.Initial
	if tier == domain.ConfidenceGreen && len(initial) == 0 {
		initial = []string{row.Final}
	}
	if tier == domain.ConfidenceRed {
		return nil
	}
	alphabet := s.Alphabet()
	for _, label := range initial {
		o, _ := alphabet.Lookup(label)
		if err := s.MarkInitial(i, o); err != nil {
			return err
		}
	}
	return nil
}

package domain

import "fmt"

// CanAdvance is the first-pass advance gate for q:
//
//	NONE   closed
//	RED    always open
//	YELLOW open with exactly two provisional selections
//	GREEN  open with exactly one provisional selection
func CanAdvance(q Question) bool {
	switch q.Confidence {
	case ConfidenceRed:
		return true
	case ConfidenceYellow:
		return len(q.InitialSelections) == 2
	case ConfidenceGreen:
		return len(q.InitialSelections) == 1
	case ConfidenceNone:
		return false
	}
	return false
}

// GateHint describes what the candidate still has to do before the gate
// opens. It returns "" when CanAdvance is true.
func GateHint(q Question) string {
	switch q.Confidence {
	case ConfidenceNone:
		return "choose a confidence level"
	case ConfidenceYellow:
		if n := len(q.InitialSelections); n != 2 {
			return fmt.Sprintf("mark 2 options (%d/2)", n)
		}
	case ConfidenceGreen:
		if len(q.InitialSelections) != 1 {
			return "mark 1 option"
		}
	}
	return ""
}

// applyMark performs one provisional-mark tap on q. GREEN replaces the
// selection (radio), YELLOW toggles membership and ignores a third distinct
// option, NONE and RED reject marking.
func applyMark(q *Question, o Option) error {
	switch q.Confidence {
	case ConfidenceGreen:
		q.InitialSelections = []Option{o}
		return nil
	case ConfidenceYellow:
		for i, s := range q.InitialSelections {
			if s == o {
				q.InitialSelections = append(q.InitialSelections[:i:i], q.InitialSelections[i+1:]...)
				return nil
			}
		}
		if len(q.InitialSelections) < ConfidenceYellow.MaxSelections() {
			q.InitialSelections = append(q.InitialSelections, o)
		}
		return nil
	case ConfidenceRed:
		return fmt.Errorf("%w: question %d is RED, no options can be marked", ErrInvalidTransition, q.ID)
	case ConfidenceNone:
		return fmt.Errorf("%w: question %d has no confidence level yet", ErrInvalidTransition, q.ID)
	}
	return fmt.Errorf("%w: unknown confidence %q", ErrInvalidOption, string(q.Confidence))
}

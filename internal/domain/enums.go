package domain

import "strings"

// Confidence is the candidate's self-declared certainty for one question.
type Confidence string

const (
	ConfidenceNone   Confidence = "NONE"
	ConfidenceRed    Confidence = "RED"
	ConfidenceYellow Confidence = "YELLOW"
	ConfidenceGreen  Confidence = "GREEN"
)

// Valid reports whether c is one of the four known tiers.
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceNone, ConfidenceRed, ConfidenceYellow, ConfidenceGreen:
		return true
	}
	return false
}

// MaxSelections is the largest provisional selection set the tier allows.
func (c Confidence) MaxSelections() int {
	switch c {
	case ConfidenceGreen:
		return 1
	case ConfidenceYellow:
		return 2
	default:
		return 0
	}
}

// Level is the 1-based tier number shown to the candidate (RED=1 .. GREEN=3).
// NONE has no level.
func (c Confidence) Level() int {
	switch c {
	case ConfidenceRed:
		return 1
	case ConfidenceYellow:
		return 2
	case ConfidenceGreen:
		return 3
	default:
		return 0
	}
}

// ParseConfidence accepts the tier names case-insensitively, plus the
// numeric levels 1-3 and the short forms r/y/g.
func ParseConfidence(s string) (Confidence, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NONE", "0":
		return ConfidenceNone, true
	case "RED", "R", "1":
		return ConfidenceRed, true
	case "YELLOW", "Y", "2":
		return ConfidenceYellow, true
	case "GREEN", "G", "3":
		return ConfidenceGreen, true
	}
	return "", false
}

// GradedTiers lists the tiers that take part in per-tier accuracy, in
// display order.
var GradedTiers = []Confidence{ConfidenceGreen, ConfidenceYellow, ConfidenceRed}

// Phase is one step of the rehearsal lifecycle.
type Phase string

const (
	PhaseSetup      Phase = "SETUP"
	PhaseTesting    Phase = "TESTING"
	PhaseRefinement Phase = "REFINEMENT"
	PhaseCorrection Phase = "CORRECTION"
	PhaseResults    Phase = "RESULTS"
)

// HasCursor reports whether the phase walks the question list with a cursor.
func (p Phase) HasCursor() bool {
	switch p {
	case PhaseTesting, PhaseRefinement, PhaseCorrection:
		return true
	}
	return false
}

// Next returns the phase that follows p, or p itself when p is terminal.
func (p Phase) Next() Phase {
	switch p {
	case PhaseSetup:
		return PhaseTesting
	case PhaseTesting:
		return PhaseRefinement
	case PhaseRefinement:
		return PhaseCorrection
	case PhaseCorrection:
		return PhaseResults
	default:
		return p
	}
}

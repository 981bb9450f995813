// Package scoring grades a consolidated answer sheet against its key.
//
// Everything here is a pure function of the question records and the error
// divisor; calling it repeatedly is free of side effects.
package scoring

import (
	"math"

	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
)

// MaxNetScore is the top of the net-score scale.
const MaxNetScore = 10.0

// Outcome classifies one graded question.
type Outcome string

const (
	OutcomeBlank     Outcome = "blank"
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
)

// Classify returns the outcome of q from its final mark and key.
func Classify(q domain.Question) Outcome {
	switch {
	case q.FinalSelection == domain.Blank:
		return OutcomeBlank
	case q.FinalSelection == q.CorrectAnswer:
		return OutcomeCorrect
	default:
		return OutcomeIncorrect
	}
}

// TierStats is the precise accuracy breakdown for one confidence tier.
// Counted is the accuracy denominator: every question of the tier for GREEN,
// only the non-blank ones for YELLOW and RED.
type TierStats struct {
	Tier     domain.Confidence `json:"tier"`
	Total    int               `json:"total"`
	Counted  int               `json:"counted"`
	Correct  int               `json:"correct"`
	Accuracy float64           `json:"accuracy"`
}

// Stats is the full results report of a rehearsal.
type Stats struct {
	TotalQuestions  int     `json:"total_questions"`
	Correct         int     `json:"correct"`
	Incorrect       int     `json:"incorrect"`
	Blank           int     `json:"blank"`
	ErrorDivisor    int     `json:"error_divisor"`
	NetScore        float64 `json:"net_score"`
	SelfReliability float64 `json:"self_reliability"`
	BlankPct        float64 `json:"blank_pct"`

	GreenAccuracy  float64 `json:"green_accuracy"`
	YellowAccuracy float64 `json:"yellow_accuracy"`
	RedAccuracy    float64 `json:"red_accuracy"`

	Tiers             []TierStats       `json:"tiers"`
	Outcomes          []QuestionOutcome `json:"outcomes"`
	YellowDoubts      []YellowDoubt     `json:"yellow_doubts,omitempty"`
	YellowDoubtHitPct float64           `json:"yellow_doubt_hit_pct"`
}

// Tier returns the breakdown for c, or a zero TierStats for NONE.
func (s Stats) Tier(c domain.Confidence) TierStats {
	for _, t := range s.Tiers {
		if t.Tier == c {
			return t
		}
	}
	return TierStats{Tier: c}
}

// Compute scores a session using its own error divisor.
func Compute(s *domain.Session) Stats {
	return Score(s.Questions(), s.ErrorDivisor())
}

// Score grades questions with the given error divisor.
//
//	net score        max(0, (correct - incorrect/divisor) * 10 / N)
//	self-reliability GREEN-and-correct / N * 100
//
// N=0 is treated as N=1 for those two figures; a divisor below 1 is treated
// as 1. Per-tier accuracies with an empty denominator are 0.
func Score(questions []domain.Question, errorDivisor int) Stats {
	if errorDivisor < 1 {
		errorDivisor = 1
	}
	st := Stats{TotalQuestions: len(questions), ErrorDivisor: errorDivisor}

	tiers := map[domain.Confidence]*TierStats{}
	for _, c := range domain.GradedTiers {
		tiers[c] = &TierStats{Tier: c}
	}

	greenCorrect := 0
	for _, q := range questions {
		outcome := Classify(q)
		switch outcome {
		case OutcomeBlank:
			st.Blank++
		case OutcomeCorrect:
			st.Correct++
		case OutcomeIncorrect:
			st.Incorrect++
		}
		st.Outcomes = append(st.Outcomes, newQuestionOutcome(q, outcome))

		ts, graded := tiers[q.Confidence]
		if !graded {
			continue
		}
		ts.Total++
		if q.Confidence == domain.ConfidenceGreen || outcome != OutcomeBlank {
			ts.Counted++
			if outcome == OutcomeCorrect {
				ts.Correct++
			}
		}
		if q.Confidence == domain.ConfidenceGreen && outcome == OutcomeCorrect {
			greenCorrect++
		}
	}

	n := float64(len(questions))
	if n == 0 {
		n = 1
	}
	net := (float64(st.Correct) - float64(st.Incorrect)/float64(errorDivisor)) * MaxNetScore / n
	st.NetScore = math.Max(0, net)
	st.SelfReliability = float64(greenCorrect) / n * 100
	st.BlankPct = percent(st.Blank, len(questions))

	for _, c := range domain.GradedTiers {
		ts := tiers[c]
		ts.Accuracy = percent(ts.Correct, ts.Counted)
		st.Tiers = append(st.Tiers, *ts)
	}
	st.GreenAccuracy = tiers[domain.ConfidenceGreen].Accuracy
	st.YellowAccuracy = tiers[domain.ConfidenceYellow].Accuracy
	st.RedAccuracy = tiers[domain.ConfidenceRed].Accuracy

	st.YellowDoubts, st.YellowDoubtHitPct = yellowDoubts(questions)
	return st
}

// percent returns part/whole*100, or 0 for an empty whole.
func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

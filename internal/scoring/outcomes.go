package scoring

import "github.com/pruizcastillo-design/Oposecurity/internal/domain"

// QuestionOutcome is one cell of the per-question results map.
type QuestionOutcome struct {
	ID                int               `json:"id"`
	Confidence        domain.Confidence `json:"confidence"`
	InitialSelections []domain.Option   `json:"initial_selections,omitempty"`
	Final             domain.Option     `json:"final"`
	Correct           domain.Option     `json:"correct"`
	Outcome           Outcome           `json:"outcome"`
}

func newQuestionOutcome(q domain.Question, o Outcome) QuestionOutcome {
	return QuestionOutcome{
		ID:                q.ID,
		Confidence:        q.Confidence,
		InitialSelections: append([]domain.Option(nil), q.InitialSelections...),
		Final:             q.FinalSelection,
		Correct:           q.CorrectAnswer,
		Outcome:           o,
	}
}

// YellowDoubt records whether the correct answer was one of the two
// options the candidate hesitated between.
type YellowDoubt struct {
	ID       int             `json:"id"`
	Pair     []domain.Option `json:"pair"`
	Correct  domain.Option   `json:"correct"`
	Final    domain.Option   `json:"final"`
	DoubtHit bool            `json:"doubt_hit"`
}

// yellowDoubts lists every graded YELLOW question and the share of them
// whose key fell inside the doubt pair.
func yellowDoubts(questions []domain.Question) ([]YellowDoubt, float64) {
	var out []YellowDoubt
	hits := 0
	for _, q := range questions {
		if q.Confidence != domain.ConfidenceYellow || !q.Graded() {
			continue
		}
		d := YellowDoubt{
			ID:       q.ID,
			Pair:     append([]domain.Option(nil), q.InitialSelections...),
			Correct:  q.CorrectAnswer,
			Final:    q.FinalSelection,
			DoubtHit: q.Selected(q.CorrectAnswer),
		}
		if d.DoubtHit {
			hits++
		}
		out = append(out, d)
	}
	return out, percent(hits, len(out))
}

package domain

// Question is the per-item state of a rehearsal. Fields are read freely by
// presentation code; writes go through Session so phase rules apply.
type Question struct {
	ID                int
	Confidence        Confidence
	InitialSelections []Option
	FinalSelection    Option
	CorrectAnswer     Option
}

// NewQuestion returns the empty record for item id.
func NewQuestion(id int) Question {
	return Question{ID: id, Confidence: ConfidenceNone}
}

// Selected reports whether o is among the provisional selections.
func (q Question) Selected(o Option) bool {
	for _, s := range q.InitialSelections {
		if s == o {
			return true
		}
	}
	return false
}

// Graded reports whether the correct answer has been entered.
func (q Question) Graded() bool { return q.CorrectAnswer != Blank }

// Answered reports whether the question counts as answered while refining:
// GREEN questions are implicitly answered, others need a final mark.
func (q Question) Answered() bool {
	return q.Confidence == ConfidenceGreen || q.FinalSelection != Blank
}

// ImpliedFinal is the final mark the question will carry after
// consolidation: the sole provisional selection for GREEN, otherwise the
// written final selection.
func (q Question) ImpliedFinal() Option {
	if q.Confidence == ConfidenceGreen {
		if len(q.InitialSelections) == 0 {
			return Blank
		}
		return q.InitialSelections[0]
	}
	return q.FinalSelection
}

// Clone returns a deep copy.
func (q Question) Clone() Question {
	c := q
	if q.InitialSelections != nil {
		c.InitialSelections = append([]Option(nil), q.InitialSelections...)
	}
	return c
}

// setConfidence switches tier. Selections never carry across tiers; setting
// the current tier again leaves them alone.
func (q *Question) setConfidence(c Confidence) {
	if q.Confidence == c {
		return
	}
	q.Confidence = c
	q.InitialSelections = nil
}

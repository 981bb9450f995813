package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestingSession(t *testing.T, n int) *Session {
	t.Helper()
	s, err := StartSession(DefaultAlphabet(), n, 4)
	require.NoError(t, err)
	return s
}

// passTesting marks every question RED except the ones listed in green,
// then walks the cursor into REFINEMENT.
func passTesting(t *testing.T, s *Session, green map[int]Option) {
	t.Helper()
	for i := 0; i < s.QuestionCount(); i++ {
		if o, ok := green[i]; ok {
			require.NoError(t, s.SetConfidence(i, ConfidenceGreen))
			require.NoError(t, s.MarkInitial(i, o))
		} else {
			require.NoError(t, s.SetConfidence(i, ConfidenceRed))
		}
	}
	for s.Phase() == PhaseTesting {
		require.NoError(t, s.Advance())
	}
	require.Equal(t, PhaseRefinement, s.Phase())
}

func passRefinement(t *testing.T, s *Session) {
	t.Helper()
	for s.Phase() == PhaseRefinement {
		require.NoError(t, s.Advance())
	}
	require.Equal(t, PhaseCorrection, s.Phase())
}

func TestStartSession(t *testing.T) {
	s := newTestingSession(t, 3)

	assert.Equal(t, PhaseTesting, s.Phase())
	assert.Equal(t, 0, s.Cursor())
	assert.Equal(t, 4, s.ErrorDivisor())
	require.Equal(t, 3, s.QuestionCount())
	for i, q := range s.Questions() {
		assert.Equal(t, i+1, q.ID)
		assert.Equal(t, ConfidenceNone, q.Confidence)
		assert.Empty(t, q.InitialSelections)
		assert.Equal(t, Blank, q.FinalSelection)
		assert.Equal(t, Blank, q.CorrectAnswer)
	}
}

func TestStartSession_InvalidConfiguration(t *testing.T) {
	cases := []struct {
		name           string
		count, divisor int
	}{
		{"zero questions", 0, 4},
		{"negative questions", -2, 4},
		{"zero divisor", 10, 0},
	}
	for _, tc := range cases {
		_, err := StartSession(DefaultAlphabet(), tc.count, tc.divisor)
		assert.ErrorIs(t, err, ErrInvalidConfiguration, tc.name)
	}

	_, err := StartSession(Alphabet{}, 3, 1)
	assert.ErrorIs(t, err, ErrInvalidConfiguration, "empty alphabet")
}

func TestStart_OnlyFromSetup(t *testing.T) {
	s := newTestingSession(t, 2)
	err := s.Start(5, 1)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, 2, s.QuestionCount())
}

func TestSetConfidence_ResetsSelectionsOnChange(t *testing.T) {
	s := newTestingSession(t, 1)
	require.NoError(t, s.SetConfidence(0, ConfidenceYellow))
	require.NoError(t, s.MarkInitial(0, "A"))
	require.NoError(t, s.MarkInitial(0, "B"))

	require.NoError(t, s.SetConfidence(0, ConfidenceYellow))
	q, _ := s.Question(0)
	assert.Equal(t, []Option{"A", "B"}, q.InitialSelections, "same tier keeps selections")

	require.NoError(t, s.SetConfidence(0, ConfidenceGreen))
	q, _ = s.Question(0)
	assert.Equal(t, ConfidenceGreen, q.Confidence)
	assert.Empty(t, q.InitialSelections)
}

func TestSetConfidence_Validation(t *testing.T) {
	s := newTestingSession(t, 2)
	assert.ErrorIs(t, s.SetConfidence(2, ConfidenceRed), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.SetConfidence(-1, ConfidenceRed), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.SetConfidence(0, Confidence("BLUE")), ErrInvalidOption)
}

func TestMarkInitial_Validation(t *testing.T) {
	s := newTestingSession(t, 1)
	require.NoError(t, s.SetConfidence(0, ConfidenceGreen))

	assert.ErrorIs(t, s.MarkInitial(0, "E"), ErrInvalidOption)
	assert.ErrorIs(t, s.MarkInitial(0, Blank), ErrInvalidOption)
	assert.ErrorIs(t, s.MarkInitial(1, "A"), ErrIndexOutOfRange)

	q, _ := s.Question(0)
	assert.Empty(t, q.InitialSelections, "failed calls leave the record untouched")
}

func TestAdvance_GateClosed(t *testing.T) {
	s := newTestingSession(t, 3)

	err := s.Advance()
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, err.Error(), "choose a confidence level")
	assert.Equal(t, 0, s.Cursor())

	require.NoError(t, s.SetConfidence(0, ConfidenceYellow))
	require.NoError(t, s.MarkInitial(0, "A"))
	require.ErrorIs(t, s.Advance(), ErrInvalidTransition)

	require.NoError(t, s.MarkInitial(0, "D"))
	require.NoError(t, s.Advance())
	assert.Equal(t, 1, s.Cursor())
}

func TestRetreat_ClampsAtZero(t *testing.T) {
	s := newTestingSession(t, 2)
	require.NoError(t, s.Retreat())
	assert.Equal(t, 0, s.Cursor())

	require.NoError(t, s.SetConfidence(0, ConfidenceRed))
	require.NoError(t, s.Advance())
	require.NoError(t, s.Retreat())
	assert.Equal(t, 0, s.Cursor())
}

func TestAdvance_LastQuestionEntersRefinement(t *testing.T) {
	s := newTestingSession(t, 2)
	passTesting(t, s, map[int]Option{1: "B"})

	assert.Equal(t, PhaseRefinement, s.Phase())
	assert.Equal(t, 0, s.Cursor())
	q, _ := s.Question(1)
	assert.Equal(t, Blank, q.FinalSelection, "entering refinement writes nothing")
}

func TestFinishPhase_OnlyFromLastQuestion(t *testing.T) {
	s := newTestingSession(t, 2)
	require.NoError(t, s.SetConfidence(0, ConfidenceRed))

	err := s.FinishPhase()
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, PhaseTesting, s.Phase())
}

func TestFinishTesting_RequiresEveryGate(t *testing.T) {
	s := newTestingSession(t, 3)
	require.NoError(t, s.SetConfidence(0, ConfidenceRed))
	require.NoError(t, s.Advance())
	require.NoError(t, s.SetConfidence(1, ConfidenceRed))
	require.NoError(t, s.Advance())
	require.NoError(t, s.SetConfidence(2, ConfidenceRed))

	// Reopen an earlier question without walking back to it.
	require.NoError(t, s.SetConfidence(0, ConfidenceYellow))

	err := s.FinishPhase()
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, err.Error(), "question 1")
	assert.Equal(t, PhaseTesting, s.Phase())
}

func TestJump(t *testing.T) {
	s := newTestingSession(t, 3)
	require.ErrorIs(t, s.Jump(2), ErrInvalidTransition, "cannot skip a closed gate")

	require.NoError(t, s.SetConfidence(0, ConfidenceRed))
	require.NoError(t, s.SetConfidence(1, ConfidenceRed))
	require.NoError(t, s.Jump(2))
	assert.Equal(t, 2, s.Cursor())

	require.NoError(t, s.Jump(0))
	assert.Equal(t, 0, s.Cursor())
	assert.ErrorIs(t, s.Jump(3), ErrIndexOutOfRange)
}

func TestPhaseOperationsRejectedOutsideTheirPhase(t *testing.T) {
	s := newTestingSession(t, 1)
	assert.ErrorIs(t, s.SetFinal(0, "A"), ErrInvalidTransition)
	assert.ErrorIs(t, s.SetCorrect(0, "A"), ErrInvalidTransition)

	passTesting(t, s, nil)
	assert.ErrorIs(t, s.SetConfidence(0, ConfidenceGreen), ErrInvalidTransition)
	assert.ErrorIs(t, s.MarkInitial(0, "A"), ErrInvalidTransition)
	assert.ErrorIs(t, s.SetCorrect(0, "A"), ErrInvalidTransition)
}

func TestRefinement_SetFinal(t *testing.T) {
	s := newTestingSession(t, 3)
	passTesting(t, s, map[int]Option{2: "D"})

	require.NoError(t, s.SetFinal(0, "C"))
	require.NoError(t, s.SetFinal(0, "B"))
	require.NoError(t, s.SetFinal(1, "A"))
	require.NoError(t, s.SetFinal(1, Blank))

	q0, _ := s.Question(0)
	q1, _ := s.Question(1)
	assert.Equal(t, Option("B"), q0.FinalSelection)
	assert.Equal(t, Blank, q1.FinalSelection)

	assert.ErrorIs(t, s.SetFinal(2, "A"), ErrInvalidTransition, "GREEN is display-only")
	assert.ErrorIs(t, s.SetFinal(0, "Z"), ErrInvalidOption)
	assert.Equal(t, 2, s.AnsweredCount(), "GREEN plus question 1")
}

func TestRefinement_AdvanceIsUngated(t *testing.T) {
	s := newTestingSession(t, 3)
	passTesting(t, s, nil)

	assert.True(t, s.CanAdvance())
	require.NoError(t, s.Advance())
	require.NoError(t, s.Advance())
	require.NoError(t, s.FinishPhase())
	assert.Equal(t, PhaseCorrection, s.Phase())
	assert.Equal(t, 0, s.Cursor())
}

func TestCorrection_GateNeedsKey(t *testing.T) {
	s := newTestingSession(t, 2)
	passTesting(t, s, nil)
	passRefinement(t, s)

	assert.False(t, s.CanAdvance())
	require.ErrorIs(t, s.Advance(), ErrInvalidTransition)
	assert.ErrorIs(t, s.SetCorrect(0, Blank), ErrInvalidOption, "no blank key")

	require.NoError(t, s.SetCorrect(0, "A"))
	require.NoError(t, s.SetCorrect(0, "B"))
	require.NoError(t, s.Advance())
	require.NoError(t, s.SetCorrect(1, "C"))
	require.NoError(t, s.Advance())

	assert.Equal(t, PhaseResults, s.Phase())
	q, _ := s.Question(0)
	assert.Equal(t, Option("B"), q.CorrectAnswer)

	assert.ErrorIs(t, s.SetCorrect(0, "D"), ErrInvalidTransition, "key is frozen after correction")
	assert.ErrorIs(t, s.Advance(), ErrInvalidTransition)
	assert.ErrorIs(t, s.Retreat(), ErrInvalidTransition)
}

func TestApplyKey(t *testing.T) {
	s := newTestingSession(t, 3)
	passTesting(t, s, nil)
	passRefinement(t, s)

	assert.ErrorIs(t, s.ApplyKey([]Option{"A", "B"}), ErrInvalidConfiguration)

	err := s.ApplyKey([]Option{"A", "X", "C"})
	require.ErrorIs(t, err, ErrInvalidOption)
	assert.Equal(t, 0, s.GradedCount(), "nothing written on a bad key")

	require.NoError(t, s.ApplyKey([]Option{"A", "B", "C"}))
	assert.Equal(t, 3, s.GradedCount())
	require.NoError(t, s.Jump(2))
	require.NoError(t, s.FinishPhase())
	assert.Equal(t, PhaseResults, s.Phase())
}

func TestAbort(t *testing.T) {
	s := NewSession("s1", DefaultAlphabet())
	assert.ErrorIs(t, s.Abort(), ErrInvalidTransition, "nothing to abort in SETUP")

	require.NoError(t, s.Start(3, 2))
	passTesting(t, s, map[int]Option{0: "A"})
	require.NoError(t, s.SetFinal(1, "C"))

	require.NoError(t, s.Abort())
	assert.Equal(t, PhaseSetup, s.Phase())
	assert.Equal(t, 0, s.QuestionCount())
	assert.Equal(t, "s1", s.ID())

	_, ok := s.Current()
	assert.False(t, ok)
	assert.ErrorIs(t, s.Advance(), ErrInvalidTransition)
}

func TestAbortThenStart_IsFresh(t *testing.T) {
	s := NewSession("", DefaultAlphabet())
	require.NoError(t, s.Start(2, 4))
	passTesting(t, s, map[int]Option{0: "A", 1: "B"})
	passRefinement(t, s)
	require.NoError(t, s.ApplyKey([]Option{"A", "C"}))
	require.NoError(t, s.Jump(1))
	require.NoError(t, s.FinishPhase())
	require.NoError(t, s.Abort())

	require.NoError(t, s.Start(4, 3))
	assert.Equal(t, PhaseTesting, s.Phase())
	assert.Equal(t, 3, s.ErrorDivisor())
	for i, q := range s.Questions() {
		assert.Equal(t, NewQuestion(i+1), q)
	}
}

func TestClone_IsIndependent(t *testing.T) {
	s := newTestingSession(t, 1)
	require.NoError(t, s.SetConfidence(0, ConfidenceYellow))
	require.NoError(t, s.MarkInitial(0, "A"))

	c := s.Clone()
	require.NoError(t, s.MarkInitial(0, "B"))

	q, _ := c.Question(0)
	assert.Equal(t, []Option{"A"}, q.InitialSelections)
	assert.Equal(t, s.Phase(), c.Phase())
}

func TestQuestionsReturnsCopies(t *testing.T) {
	s := newTestingSession(t, 1)
	require.NoError(t, s.SetConfidence(0, ConfidenceGreen))
	require.NoError(t, s.MarkInitial(0, "A"))

	qs := s.Questions()
	qs[0].InitialSelections[0] = "D"
	qs[0].Confidence = ConfidenceRed

	q, _ := s.Question(0)
	assert.Equal(t, ConfidenceGreen, q.Confidence)
	assert.Equal(t, []Option{"A"}, q.InitialSelections)
}

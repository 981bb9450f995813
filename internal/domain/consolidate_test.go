package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsolidate(t *testing.T) {
	qs := []Question{
		{ID: 1, Confidence: ConfidenceGreen, InitialSelections: []Option{"B"}},
		{ID: 2, Confidence: ConfidenceYellow, InitialSelections: []Option{"A", "C"}, FinalSelection: "D"},
		{ID: 3, Confidence: ConfidenceRed},
		{ID: 4, Confidence: ConfidenceGreen},
	}
	consolidate(qs)

	assert.Equal(t, Option("B"), qs[0].FinalSelection)
	assert.Equal(t, Option("D"), qs[1].FinalSelection, "refinement may deviate from the doubt pair")
	assert.Equal(t, Blank, qs[2].FinalSelection)
	assert.Equal(t, Blank, qs[3].FinalSelection, "GREEN without a selection stays blank")
}

func TestFinishRefinement_Consolidates(t *testing.T) {
	s := newTestingSession(t, 2)
	require.NoError(t, s.SetConfidence(0, ConfidenceGreen))
	require.NoError(t, s.MarkInitial(0, "A"))
	require.NoError(t, s.MarkInitial(0, "C"))
	require.NoError(t, s.Advance())
	require.NoError(t, s.SetConfidence(1, ConfidenceYellow))
	require.NoError(t, s.MarkInitial(1, "A"))
	require.NoError(t, s.MarkInitial(1, "B"))
	require.NoError(t, s.Advance())
	require.Equal(t, PhaseRefinement, s.Phase())

	q0, _ := s.Question(0)
	assert.Equal(t, Blank, q0.FinalSelection, "not written before consolidation")
	assert.Equal(t, Option("C"), q0.ImpliedFinal())

	require.NoError(t, s.Jump(1))
	require.NoError(t, s.SetFinal(1, "B"))
	require.NoError(t, s.FinishPhase())

	q0, _ = s.Question(0)
	q1, _ := s.Question(1)
	assert.Equal(t, Option("C"), q0.FinalSelection)
	assert.Equal(t, Option("B"), q1.FinalSelection)
}

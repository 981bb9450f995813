package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanAdvance(t *testing.T) {
	cases := []struct {
		name string
		q    Question
		want bool
	}{
		{"none", Question{Confidence: ConfidenceNone}, false},
		{"red", Question{Confidence: ConfidenceRed}, true},
		{"yellow empty", Question{Confidence: ConfidenceYellow}, false},
		{"yellow one", Question{Confidence: ConfidenceYellow, InitialSelections: []Option{"A"}}, false},
		{"yellow two", Question{Confidence: ConfidenceYellow, InitialSelections: []Option{"A", "B"}}, true},
		{"green empty", Question{Confidence: ConfidenceGreen}, false},
		{"green one", Question{Confidence: ConfidenceGreen, InitialSelections: []Option{"C"}}, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanAdvance(tc.q), tc.name)
	}
}

func TestGateHint(t *testing.T) {
	assert.Equal(t, "choose a confidence level", GateHint(Question{Confidence: ConfidenceNone}))
	assert.Equal(t, "mark 2 options (1/2)", GateHint(Question{Confidence: ConfidenceYellow, InitialSelections: []Option{"A"}}))
	assert.Equal(t, "mark 1 option", GateHint(Question{Confidence: ConfidenceGreen}))
	assert.Empty(t, GateHint(Question{Confidence: ConfidenceRed}))
	assert.Empty(t, GateHint(Question{Confidence: ConfidenceGreen, InitialSelections: []Option{"A"}}))
}

func TestApplyMark_GreenIsRadio(t *testing.T) {
	q := Question{ID: 1, Confidence: ConfidenceGreen}
	require.NoError(t, applyMark(&q, "A"))
	assert.Equal(t, []Option{"A"}, q.InitialSelections)

	require.NoError(t, applyMark(&q, "C"))
	assert.Equal(t, []Option{"C"}, q.InitialSelections, "second tap replaces")

	require.NoError(t, applyMark(&q, "C"))
	assert.Equal(t, []Option{"C"}, q.InitialSelections, "same tap keeps the singleton")
}

func TestApplyMark_YellowToggles(t *testing.T) {
	q := Question{ID: 1, Confidence: ConfidenceYellow}
	require.NoError(t, applyMark(&q, "A"))
	require.NoError(t, applyMark(&q, "B"))
	assert.Equal(t, []Option{"A", "B"}, q.InitialSelections)

	require.NoError(t, applyMark(&q, "A"))
	assert.Equal(t, []Option{"B"}, q.InitialSelections)
}

func TestApplyMark_YellowIgnoresThirdOption(t *testing.T) {
	q := Question{ID: 1, Confidence: ConfidenceYellow, InitialSelections: []Option{"A", "B"}}
	require.NoError(t, applyMark(&q, "C"))
	assert.Equal(t, []Option{"A", "B"}, q.InitialSelections)
}

func TestApplyMark_YellowRemovalDoesNotAliasClones(t *testing.T) {
	q := Question{ID: 1, Confidence: ConfidenceYellow, InitialSelections: []Option{"A", "B"}}
	snapshot := q.InitialSelections

	require.NoError(t, applyMark(&q, "A"))
	assert.Equal(t, []Option{"B"}, q.InitialSelections)
	assert.Equal(t, []Option{"A", "B"}, snapshot)
}

func TestApplyMark_RejectsRedAndNone(t *testing.T) {
	for _, c := range []Confidence{ConfidenceRed, ConfidenceNone} {
		q := Question{ID: 3, Confidence: c}
		err := applyMark(&q, "A")
		require.ErrorIs(t, err, ErrInvalidTransition, "confidence=%s", c)
		assert.Empty(t, q.InitialSelections)
	}
}

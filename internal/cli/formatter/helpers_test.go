package formatter

import (
	"testing"
	"time"

	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestHumanDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now.Add(-2 * time.Hour), "Today"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"older", time.Date(2025, 12, 25, 9, 0, 0, 0, time.UTC), "Dec 25, 2025"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanDateFrom(tt.input, now))
		})
	}
}

func TestFormatNumbers(t *testing.T) {
	assert.Equal(t, "75.0%", FormatPercent(75))
	assert.Equal(t, "33.3%", FormatPercent(100.0/3))
	assert.Equal(t, "3.75", FormatScore(3.75))
	assert.Equal(t, "0.00", FormatScore(0))
}

func TestFormatOptions(t *testing.T) {
	assert.Equal(t, "A/C", FormatOptions([]domain.Option{"A", "C"}, "/"))
	assert.Equal(t, "-", FormatOptions(nil, "/"))
	assert.Equal(t, "A,-", FormatOptions([]domain.Option{"A", domain.Blank}, ","))
}

func TestOptionRow(t *testing.T) {
	q := domain.Question{ID: 1, Confidence: domain.ConfidenceYellow,
		InitialSelections: []domain.Option{"A", "C"}, FinalSelection: "C", CorrectAnswer: "B"}
	row := OptionRow(domain.DefaultAlphabet(), q, false)
	assert.Contains(t, row, "[A]")
	assert.Contains(t, row, "[C]")
	assert.NotContains(t, row, "[B]")

	withKey := OptionRow(domain.DefaultAlphabet(), q, true)
	assert.Contains(t, withKey, "[B]")
}

func TestTruncID(t *testing.T) {
	assert.Contains(t, TruncID("0123456789abcdef"), "01234567")
	assert.NotContains(t, TruncID("0123456789abcdef"), "89")
	assert.Contains(t, TruncID("abc"), "abc")
}

func TestTierBadge(t *testing.T) {
	for _, c := range domain.GradedTiers {
		assert.Contains(t, TierBadge(c), string(c))
		assert.NotEqual(t, "Unrated", TierLabel(c))
	}
	assert.Contains(t, TierBadge(domain.ConfidenceNone), "NONE")
	assert.Equal(t, "Unrated", TierLabel(domain.ConfidenceNone))
}

func TestPhaseBadge(t *testing.T) {
	assert.Contains(t, PhaseBadge(domain.PhaseTesting), "TESTING")
	assert.Contains(t, PhaseBadge(domain.PhaseRefinement), "2/3")
	assert.Contains(t, PhaseBadge(domain.PhaseResults), "RESULTS")
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
	"github.com/pruizcastillo-design/Oposecurity/internal/scoring"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// TierStyle returns the style used for a confidence tier.
func TierStyle(c domain.Confidence) lipgloss.Style {
	switch c {
	case domain.ConfidenceGreen:
		return StyleGreen
	case domain.ConfidenceYellow:
		return StyleYellow
	case domain.ConfidenceRed:
		return StyleRed
	default:
		return StyleDim
	}
}

// TierLabel is the short human description of a tier.
func TierLabel(c domain.Confidence) string {
	switch c {
	case domain.ConfidenceGreen:
		return "Sure"
	case domain.ConfidenceYellow:
		return "Doubt between two"
	case domain.ConfidenceRed:
		return "No idea"
	default:
		return "Unrated"
	}
}

// TierBadge returns a colored tier indicator such as "● GREEN".
func TierBadge(c domain.Confidence) string {
	if c == domain.ConfidenceNone {
		return StyleDim.Render("○ NONE")
	}
	return TierStyle(c).Render("● " + string(c))
}

// PhaseBadge returns the phase name with its position in the rehearsal.
func PhaseBadge(p domain.Phase) string {
	switch p {
	case domain.PhaseTesting:
		return StyleBlue.Render("1/3 TESTING")
	case domain.PhaseRefinement:
		return StyleYellow.Render("2/3 REFINEMENT")
	case domain.PhaseCorrection:
		return StylePurple.Render("3/3 CORRECTION")
	case domain.PhaseResults:
		return StyleGreen.Render("✔ RESULTS")
	default:
		return StyleDim.Render(string(p))
	}
}

// OutcomeStyle colors a graded question by its outcome.
func OutcomeStyle(o scoring.Outcome) lipgloss.Style {
	switch o {
	case scoring.OutcomeCorrect:
		return StyleGreen
	case scoring.OutcomeIncorrect:
		return StyleRed
	default:
		return StyleDim
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

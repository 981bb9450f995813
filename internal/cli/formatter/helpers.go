package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatPercent renders a 0-100 figure with one decimal.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatScore renders a net score on the 0-10 scale with two decimals.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}

// ScoreStyle colors a net score: green from 5, yellow from 3.
func ScoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 5:
		return StyleGreen
	case score >= 3:
		return StyleYellow
	default:
		return StyleRed
	}
}

// AccuracyStyle colors an accuracy percentage: green above 66, yellow from 33.
func AccuracyStyle(pct float64) lipgloss.Style {
	switch {
	case pct > 66:
		return StyleGreen
	case pct >= 33:
		return StyleYellow
	default:
		return StyleRed
	}
}

// FormatOptions joins option labels with a separator, rendering blanks as "-".
func FormatOptions(opts []domain.Option, sep string) string {
	if len(opts) == 0 {
		return "-"
	}
	parts := make([]string, len(opts))
	for i, o := range opts {
		parts[i] = o.String()
	}
	return strings.Join(parts, sep)
}

// OptionRow renders every option of the alphabet, highlighting the selected
// ones in the tier color and the key in purple when known.
func OptionRow(alphabet domain.Alphabet, q domain.Question, showKey bool) string {
	style := TierStyle(q.Confidence)
	parts := make([]string, 0, alphabet.Len())
	for _, o := range alphabet.Options() {
		label := "[" + o.String() + "]"
		switch {
		case showKey && o == q.CorrectAnswer:
			parts = append(parts, StylePurple.Bold(true).Render(label))
		case o == q.FinalSelection && q.Confidence != domain.ConfidenceGreen:
			parts = append(parts, StyleBold.Render(label))
		case q.Selected(o):
			parts = append(parts, style.Render(label))
		default:
			parts = append(parts, StyleDim.Render(" "+o.String()+" "))
		}
	}
	return strings.Join(parts, " ")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// HumanDate returns a human-friendly absolute date string.
func HumanDate(t time.Time) string {
	return HumanDateFrom(t, time.Now())
}

// HumanDateFrom returns a human-friendly date string relative to now.
func HumanDateFrom(t time.Time, now time.Time) string {
	t = t.In(now.Location())
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	yesterday := now.AddDate(0, 0, -1)
	y3, m3, d3 := yesterday.Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

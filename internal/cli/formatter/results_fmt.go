package formatter

import (
	"fmt"
	"strings"

	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
	"github.com/pruizcastillo-design/Oposecurity/internal/scoring"
)

const (
	tierBarWidth = 12
	mapColumns   = 10
)

// FormatResults renders the full results dashboard: score summary, tier
// precision, yellow doubts and the per-question map.
func FormatResults(st scoring.Stats) string {
	var b strings.Builder
	b.WriteString(RenderBox("Results", formatSummary(st)))
	b.WriteString("\n\n")
	b.WriteString(FormatTierTable(st))
	if len(st.YellowDoubts) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatYellowDoubts(st))
	}
	b.WriteString("\n")
	b.WriteString(FormatTacticalMap(st.Outcomes))
	return b.String()
}

func formatSummary(st scoring.Stats) string {
	lines := []string{
		fmt.Sprintf("%s  %s %s",
			Dim("Net score       "),
			ScoreStyle(st.NetScore).Bold(true).Render(FormatScore(st.NetScore)),
			Dim(fmt.Sprintf("/ %.0f", scoring.MaxNetScore))),
		fmt.Sprintf("%s  %s", Dim("Self-reliability"), AccuracyStyle(st.SelfReliability).Render(FormatPercent(st.SelfReliability))),
		fmt.Sprintf("%s  %s  %s  %s",
			Dim("Answers         "),
			StyleGreen.Render(fmt.Sprintf("%d correct", st.Correct)),
			StyleRed.Render(fmt.Sprintf("%d incorrect", st.Incorrect)),
			Dim(fmt.Sprintf("%d blank (%s)", st.Blank, FormatPercent(st.BlankPct)))),
		Dim(fmt.Sprintf("%d questions, each error costs 1/%d of a hit", st.TotalQuestions, st.ErrorDivisor)),
	}
	return strings.Join(lines, "\n")
}

// FormatTierTable renders precision per confidence tier.
func FormatTierTable(st scoring.Stats) string {
	headers := []string{"TIER", "QUESTIONS", "ANSWERED", "CORRECT", "PRECISION", ""}
	var rows [][]string
	for _, c := range domain.GradedTiers {
		ts := st.Tier(c)
		rows = append(rows, []string{
			TierBadge(c),
			fmt.Sprintf("%d", ts.Total),
			fmt.Sprintf("%d", ts.Counted),
			fmt.Sprintf("%d", ts.Correct),
			AccuracyStyle(ts.Accuracy).Render(FormatPercent(ts.Accuracy)),
			RenderCompactBar(ts.Accuracy/100, tierBarWidth, false),
		})
	}
	return Header("Precision by tier") + "\n" + RenderTable(headers, rows)
}

// FormatYellowDoubts lists YELLOW questions and whether the key was one of
// the two options in doubt.
func FormatYellowDoubts(st scoring.Stats) string {
	var b strings.Builder
	b.WriteString(Header("Yellow doubts"))
	b.WriteString("\n")
	for _, d := range st.YellowDoubts {
		mark := StyleRed.Render("✖ outside the pair")
		if d.DoubtHit {
			mark = StyleGreen.Render("✔ in the pair")
		}
		b.WriteString(fmt.Sprintf("  Q%-3d %s  key %s  marked %s  %s\n",
			d.ID,
			StyleYellow.Render(FormatOptions(d.Pair, "/")),
			StylePurple.Render(d.Correct.String()),
			d.Final.String(),
			mark))
	}
	b.WriteString(Dim(fmt.Sprintf("  Key inside the doubt pair: %s", FormatPercent(st.YellowDoubtHitPct))))
	b.WriteString("\n")
	return b.String()
}

// FormatTacticalMap renders one cell per question, colored by outcome, with
// the declared tier as its letter.
func FormatTacticalMap(outcomes []scoring.QuestionOutcome) string {
	var b strings.Builder
	b.WriteString(Header("Question map"))
	b.WriteString("\n")
	for i, o := range outcomes {
		if i > 0 && i%mapColumns == 0 {
			b.WriteString("\n")
		}
		cell := fmt.Sprintf("%3d%s", o.ID, tierLetter(o.Confidence))
		b.WriteString(OutcomeStyle(o.Outcome).Render(cell))
		b.WriteString(" ")
	}
	b.WriteString("\n")
	b.WriteString(Dim("G/Y/R declared tier · ") +
		StyleGreen.Render("correct") + Dim(" · ") +
		StyleRed.Render("incorrect") + Dim(" · blank"))
	b.WriteString("\n")
	return b.String()
}

func tierLetter(c domain.Confidence) string {
	if c == domain.ConfidenceNone {
		return "·"
	}
	return string(c)[:1]
}

// FormatKeyList renders the answer-key library as a table.
func FormatKeyList(keys []*domain.AnswerKey) string {
	if len(keys) == 0 {
		return Dim("No answer keys stored. Import one with: oposecurity key import FILE --name NAME") + "\n"
	}
	headers := []string{"NAME", "QUESTIONS", "ANSWERS", "ADDED", "ID"}
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{
			Bold(k.Name),
			fmt.Sprintf("%d", len(k.Answers)),
			truncate(k.Compact(), 24),
			HumanDate(k.CreatedAt),
			TruncID(k.ID),
		})
	}
	return RenderTable(headers, rows)
}

// FormatKeyDetail renders one answer key, numbered in rows of ten.
func FormatKeyDetail(k *domain.AnswerKey) string {
	var b strings.Builder
	for i, a := range k.Answers {
		if i > 0 && i%mapColumns == 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%s %-3s", Dim(fmt.Sprintf("%3d", i+1)), StylePurple.Render(a.String())))
	}
	body := fmt.Sprintf("%s\n%s\n\n%s",
		Dim(fmt.Sprintf("%d answers · added %s", len(k.Answers), HumanDate(k.CreatedAt))),
		Dim("id "+k.ID),
		b.String())
	return RenderBox(k.Name, body)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const colGap = 2

// RenderTable renders an aligned table with a header separator line.
// Columns whose cells are all counts or percentages are right-aligned.
// Widths are measured on visible text, so styled cells line up.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)
	widths := make([]int, cols)
	right := make([]bool, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
		right[i] = len(rows) > 0 && numericColumn(rows, i)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := range cols {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(padCell(style(cell), lipgloss.Width(cell), widths[i], right[i], i == cols-1))
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })
	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}
	return b.String()
}

// padCell fills a cell of visible width w out to width. The last column is
// not padded on the right.
func padCell(cell string, w, width int, right, last bool) string {
	pad := max(width-w, 0)
	if right {
		return strings.Repeat(" ", pad) + cell
	}
	if last {
		return cell
	}
	return cell + strings.Repeat(" ", pad)
}

// numericColumn reports whether every cell of column i is a number,
// optionally with a trailing %.
func numericColumn(rows [][]string, i int) bool {
	for _, row := range rows {
		if i >= len(row) {
			return false
		}
		s := strings.TrimSuffix(strings.TrimSpace(ansi.Strip(row[i])), "%")
		if s == "" || strings.Trim(s, "0123456789.") != "" {
			return false
		}
	}
	return true
}

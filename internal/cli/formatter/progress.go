package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

func clampBar(pct float64, width int) (float64, int, int) {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	return pct, filled, width - filled
}

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct, filled, empty := clampBar(pct, width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderCompactBar renders a bare bar with no brackets or percentage, for
// table cells. dim renders it in the muted color without ANSI styling of the
// filled part.
func RenderCompactBar(pct float64, width int, dim bool) string {
	_, filled, empty := clampBar(pct, width)
	if dim {
		return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)
	}
	return StyleBlue.Render(strings.Repeat(filledBlock, filled)) +
		StyleDim.Render(strings.Repeat(emptyBlock, empty))
}

// RenderStep renders "Question 3 of 10" with a compact position bar.
func RenderStep(cursor, total, width int) string {
	if total <= 0 {
		return Dim("no questions")
	}
	pct := float64(cursor+1) / float64(total)
	return fmt.Sprintf("%s %s", Bold(fmt.Sprintf("Question %d of %d", cursor+1, total)),
		RenderCompactBar(pct, width, false))
}

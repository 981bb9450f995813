package formatter

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := ansi.Strip(RenderTable(
		[]string{"NAME", "COUNT"},
		[][]string{{"mock-1", "4"}, {"b", "120"}},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "NAME    COUNT", lines[0])
	assert.Equal(t, "──────  ─────", lines[1])
	assert.Equal(t, "mock-1      4", lines[2])
	assert.Equal(t, "b         120", lines[3])
}

func TestRenderTable_TextColumnLeftAligned(t *testing.T) {
	out := ansi.Strip(RenderTable([]string{"A", "B"}, [][]string{{"x", "yes"}, {"long", "no"}}))
	assert.Contains(t, out, "x     yes")
	assert.Contains(t, out, "long  no")
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}

func TestNumericColumn(t *testing.T) {
	rows := [][]string{{"a", "12.5%"}, {"b", StyleGreen.Render("3")}}
	assert.False(t, numericColumn(rows, 0))
	assert.True(t, numericColumn(rows, 1))
	assert.False(t, numericColumn(rows, 2))
}

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandHistory(t *testing.T) {
	var h commandHistory
	_, ok := h.prev()
	assert.False(t, ok)

	h.add("go 3")
	h.add("finish")
	h.add("finish")
	assert.Equal(t, []string{"go 3", "finish"}, h.lines)

	line, ok := h.prev()
	assert.True(t, ok)
	assert.Equal(t, "finish", line)
	line, _ = h.prev()
	assert.Equal(t, "go 3", line)
	_, ok = h.prev()
	assert.False(t, ok)

	line, _ = h.next()
	assert.Equal(t, "finish", line)
	line, ok = h.next()
	assert.True(t, ok)
	assert.Empty(t, line)
}

func TestFilterSuggestions(t *testing.T) {
	assert.Equal(t, []string{"key list", "key show", "key import", "key remove"}, filterSuggestions(commandNames, "KEY"))
	assert.Empty(t, filterSuggestions(commandNames, "finish"))
}

func TestCommandBar_SuggestKeyNames(t *testing.T) {
	app := testApp(t)
	seedKey(t, app, "mock-1", "A")
	seedKey(t, app, "mock-2", "B")
	bar := newCommandBar(newSharedState(app))

	assert.Equal(t, []string{"apply mock-1", "apply mock-2"}, bar.suggest("apply mo"))
	assert.Equal(t, []string{"key show mock-1", "key show mock-2"}, bar.suggest("key show m"))
	assert.Empty(t, bar.suggest("apply mock-1"))
	assert.Equal(t, []string{"apply", "abort"}, bar.suggest("a"))
	assert.Nil(t, bar.suggest("  "))
}

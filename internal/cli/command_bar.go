package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pruizcastillo-design/Oposecurity/internal/cli/formatter"
)

// commandBar is the text input at the bottom of the TUI. It runs rehearsal
// commands (go, apply, finish, abort) and the non-interactive subcommands,
// completing command and key names as you type.
type commandBar struct {
	input   textinput.Model
	state   *SharedState
	focused bool
	history commandHistory
}

func newCommandBar(state *SharedState) commandBar {
	ti := textinput.New()
	ti.Prompt = ""
	ti.ShowSuggestions = true
	ti.CharLimit = 200
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))
	return commandBar{input: ti, state: state}
}

func (c *commandBar) Focus() {
	c.focused = true
	c.input.Focus()
}

func (c *commandBar) Blur() {
	c.focused = false
	c.input.Blur()
}

func (c *commandBar) Focused() bool { return c.focused }

func (c *commandBar) SetWidth(w int) {
	c.input.Width = max(w-len(c.promptLabel())-4, 1)
}

// Update handles a key while the bar has focus. Enter runs the line and
// hands focus back to the view; Esc discards it.
func (c *commandBar) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		line := strings.TrimSpace(c.input.Value())
		c.reset()
		if line == "" {
			return nil
		}
		c.history.add(line)
		return executeCommand(c.state, line)

	case tea.KeyEsc:
		c.reset()
		return nil

	case tea.KeyUp, tea.KeyDown:
		line, ok := c.history.prev()
		if msg.Type == tea.KeyDown {
			line, ok = c.history.next()
		}
		if ok {
			c.input.SetValue(line)
			c.input.CursorEnd()
		}
		return nil
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	c.input.SetSuggestions(c.suggest(c.input.Value()))
	return cmd
}

// UpdateNonKey feeds cursor blink and similar messages to the input.
func (c *commandBar) UpdateNonKey(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// Value returns the text typed so far.
func (c *commandBar) Value() string {
	return c.input.Value()
}

func (c *commandBar) reset() {
	c.input.Reset()
	c.input.SetSuggestions(nil)
	c.Blur()
}

func (c *commandBar) View() string {
	prompt := formatter.StylePurple.Render("oposecurity")
	if c.state.InRehearsal() {
		prompt += " " + formatter.Dim("(") + formatter.StyleBlue.Render(c.phaseLabel()) + formatter.Dim(")")
	}
	prompt += " " + formatter.Dim("❯") + " "
	if !c.focused {
		return prompt + formatter.Dim("press : to type a command")
	}
	return prompt + c.input.View()
}

// promptLabel is the unstyled prompt text, used to size the input.
func (c *commandBar) promptLabel() string {
	if c.state.InRehearsal() {
		return "oposecurity (" + c.phaseLabel() + ")"
	}
	return "oposecurity"
}

func (c *commandBar) phaseLabel() string {
	return strings.ToLower(string(c.state.Phase))
}

// ── completion ───────────────────────────────────────────────────────────────

// keyArgCommands take a stored answer-key name as their argument.
var keyArgCommands = []string{"apply", "key show", "key remove", "key rm"}

// suggest completes a command name, or a key name after a command in
// keyArgCommands.
func (c *commandBar) suggest(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	for _, cmd := range keyArgCommands {
		if !strings.HasPrefix(strings.ToLower(text), cmd+" ") {
			continue
		}
		var full []string
		for _, name := range c.keyNames() {
			full = append(full, cmd+" "+name)
		}
		return filterSuggestions(full, text)
	}
	return filterSuggestions(commandNames, text)
}

func (c *commandBar) keyNames() []string {
	if c.state.App.Keys == nil {
		return nil
	}
	keys, err := c.state.App.Keys.List(context.Background())
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, k.Name)
	}
	return names
}

// filterSuggestions keeps the candidates that extend prefix, ignoring case.
func filterSuggestions(candidates []string, prefix string) []string {
	var out []string
	lower := strings.ToLower(prefix)
	for _, s := range candidates {
		if strings.HasPrefix(strings.ToLower(s), lower) && !strings.EqualFold(s, prefix) {
			out = append(out, s)
		}
	}
	return out
}

// ── history ──────────────────────────────────────────────────────────────────

// commandHistory is the session's list of entered lines with a browse
// position; pos == len(lines) means "past the newest".
type commandHistory struct {
	lines []string
	pos   int
}

func (h *commandHistory) add(line string) {
	if n := len(h.lines); n == 0 || h.lines[n-1] != line {
		h.lines = append(h.lines, line)
	}
	h.pos = len(h.lines)
}

func (h *commandHistory) prev() (string, bool) {
	if h.pos == 0 {
		return "", false
	}
	h.pos--
	return h.lines[h.pos], true
}

// next steps toward the newest line; past it the input is cleared.
func (h *commandHistory) next() (string, bool) {
	if h.pos >= len(h.lines)-1 {
		h.pos = len(h.lines)
		return "", true
	}
	h.pos++
	return h.lines[h.pos], true
}

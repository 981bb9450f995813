package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pruizcastillo-design/Oposecurity/internal/cli/formatter"
)

// outputPane holds the text printed by the last command-bar command. It
// replaces the active view until dismissed and scrolls when taller than the
// content area.
type outputPane struct {
	vp     viewport.Model
	text   string
	active bool
}

func newOutputPane() outputPane {
	vp := viewport.New(0, 0)
	vp.KeyMap = outputViewportKeyMap()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	return outputPane{vp: vp}
}

func (p *outputPane) show(text string, width, height int) {
	p.text = text
	p.active = true
	p.vp.SetContent(text)
	p.resize(width, height)
	p.vp.GotoTop()
}

func (p *outputPane) clear() {
	p.text = ""
	p.active = false
}

func (p *outputPane) resize(width, height int) {
	p.vp.Width = width
	p.vp.Height = height
}

func (p *outputPane) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.vp, cmd = p.vp.Update(msg)
	return cmd
}

// scrollable reports whether the text overflows the pane.
func (p *outputPane) scrollable() bool {
	return p.active && p.vp.TotalLineCount() > p.vp.Height
}

func (p *outputPane) view(sized bool) string {
	if p.active && sized {
		return p.vp.View()
	}
	return p.text
}

// hints are the status-bar entries while the pane scrolls.
func (p *outputPane) hints() []string {
	return []string{
		scrollIndicator(p.vp),
		formatter.Dim("↑↓ pgup/pgdn: scroll"),
		formatter.Dim("esc: dismiss"),
	}
}

// outputViewportKeyMap binds only arrow and page keys, so option letters
// stay free for the views.
func outputViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
}

func isOutputScrollKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlU, tea.KeyCtrlD:
		return true
	}
	return false
}

func scrollIndicator(vp viewport.Model) string {
	switch {
	case vp.AtTop():
		return formatter.Dim("[TOP]")
	case vp.AtBottom():
		return formatter.Dim("[END]")
	}
	return formatter.Dim(fmt.Sprintf("[%d%%]", int(vp.ScrollPercent()*100)))
}

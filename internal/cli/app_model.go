package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pruizcastillo-design/Oposecurity/internal/cli/formatter"
	"github.com/pruizcastillo-design/Oposecurity/internal/service"
)

// launchOptions preconfigure the TUI from command-line flags.
type launchOptions struct {
	start   *service.StartRequest // skip the setup form
	keyName string
}

// appModel is the root bubbletea Model. It keeps a stack of views (the
// current screen plus any wizard on top), the command bar and the output
// pane of the last command.
type appModel struct {
	state     *SharedState
	viewStack []View
	cmdBar    commandBar
	output    outputPane
	quitting  bool
	startCmd  tea.Cmd
}

func newAppModel(app *App, opts launchOptions) appModel {
	state := newSharedState(app)
	state.KeyName = opts.keyName
	if opts.start != nil {
		state.LastRequest = *opts.start
	}

	m := appModel{
		state:     state,
		cmdBar:    newCommandBar(state),
		output:    newOutputPane(),
		viewStack: []View{newSetupView(state)},
	}
	if opts.start != nil {
		m.startCmd = startRehearsalCmd(state, *opts.start)
	}
	return m
}

func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// forward hands msg to the active view and stores the updated view.
func (m *appModel) forward(msg tea.Msg) tea.Cmd {
	v := m.activeView()
	if v == nil {
		return nil
	}
	updated, cmd := v.Update(msg)
	m.viewStack[len(m.viewStack)-1] = updated.(View)
	return cmd
}

func (m appModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	if v := m.activeView(); v != nil {
		cmds = append(cmds, v.Init())
	}
	return tea.Batch(append(cmds, m.startCmd)...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.cmdBar.SetWidth(msg.Width)
		m.output.resize(msg.Width, m.state.ContentHeight())
		return m, m.forward(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.output.active {
			return m, m.output.update(msg)
		}

	case pushViewMsg:
		m.cmdBar.Blur()
		m.output.clear()
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case resetViewMsg:
		m.cmdBar.Blur()
		m.output.clear()
		m.viewStack = []View{msg.view}
		return m, tea.Batch(msg.view.Init(), m.sizeCmd())

	case cmdOutputMsg:
		m.output.show(msg.output, m.state.Width, m.state.ContentHeight())
		return m, nil

	case wizardCompleteMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		m.output.clear()
		return m, msg.nextCmd
	}

	// Cursor blink and friends belong to whoever holds focus.
	if m.cmdBar.Focused() {
		return m, m.cmdBar.UpdateNonKey(msg)
	}
	return m, m.forward(msg)
}

// sizeCmd replays the terminal size so a freshly reset view can lay itself
// out.
func (m appModel) sizeCmd() tea.Cmd {
	if m.state.Width == 0 && m.state.Height == 0 {
		return nil
	}
	size := tea.WindowSizeMsg{Width: m.state.Width, Height: m.state.Height}
	return func() tea.Msg { return size }
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.cmdBar.Focused() {
		if msg.Type == tea.KeyEnter {
			m.output.clear()
		}
		return m, m.cmdBar.Update(msg)
	}

	// Scroll keys move the output; anything else dismisses it first. Esc
	// only dismisses.
	if m.output.active {
		if isOutputScrollKey(msg) {
			return m, m.output.update(msg)
		}
		m.output.clear()
		if msg.Type == tea.KeyEsc {
			return m, nil
		}
	}

	v := m.activeView()
	if msg.String() == ":" && !viewIsForm(v) {
		m.cmdBar.Focus()
		return m, nil
	}
	if viewCapturesInput(v) {
		return m, m.forward(msg)
	}

	switch {
	case msg.String() == "q":
		m.quitting = true
		return m, tea.Quit
	case msg.Type == tea.KeyEsc:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil
	}
	return m, m.forward(msg)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	content := ""
	if m.output.text != "" {
		content = m.output.view(m.state.Height > 0)
	} else if v := m.activeView(); v != nil {
		content = v.View()
	}

	out := strings.Join([]string{m.renderHeader(), content, m.renderStatusBar(), m.cmdBar.View()}, "\n")

	// Fill the screen so the alt-screen line diff leaves no stale rows.
	if lines := strings.Count(out, "\n") + 1; lines < m.state.Height {
		out += strings.Repeat("\n", m.state.Height-lines)
	}
	return out
}

func (m *appModel) rule() string {
	return formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
}

// renderHeader shows the breadcrumb of the view stack and, during a
// rehearsal, the answer key waiting for correction.
func (m *appModel) renderHeader() string {
	header := formatter.StylePurple.Render("oposecurity")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	if len(crumbs) > 0 {
		header += formatter.Dim(" › " + strings.Join(crumbs, " › "))
	}
	if m.state.KeyName != "" && m.state.InRehearsal() {
		header += "  " + formatter.Dim("[key ") + formatter.StylePurple.Render(m.state.KeyName) + formatter.Dim("]")
	}
	return header + "\n" + m.rule()
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	switch v := m.activeView(); {
	case m.output.scrollable():
		hints = m.output.hints()
	case v != nil && !m.output.active:
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}
	if !m.cmdBar.Focused() && !m.output.active && !viewIsForm(m.activeView()) {
		hints = append(hints, formatter.Dim(": command"))
	}
	return m.rule() + "\n" + strings.Join(hints, "  ")
}

// viewCapturesInput reports whether v takes every key itself, including
// 'q' and Esc: forms type text and the rehearsal reads option letters.
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	switch v.ID() {
	case ViewSetup, ViewForm, ViewRehearsal:
		return true
	}
	return false
}

// viewIsForm reports whether v is a free-text huh form, where ':' is
// ordinary input. The setup form only takes counts and option labels.
func viewIsForm(v View) bool {
	return v != nil && v.ID() == ViewForm
}

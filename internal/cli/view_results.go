package cli

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pruizcastillo-design/Oposecurity/internal/cli/formatter"
	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
	"github.com/pruizcastillo-design/Oposecurity/internal/scoring"
)

type resultsKeyMap struct {
	New  key.Binding
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// resultsView shows the scored dashboard of a finished rehearsal in a
// scrollable viewport.
type resultsView struct {
	state     *SharedState
	sessionID string
	vp        viewport.Model
	keys      resultsKeyMap
	stats     *scoring.Stats
	err       string
}

func newResultsView(state *SharedState, sess *domain.Session) *resultsView {
	vp := viewport.New(max(state.Width, 20), state.ContentHeight())
	vp.KeyMap = outputViewportKeyMap()
	return &resultsView{
		state:     state,
		sessionID: sess.ID(),
		vp:        vp,
		keys: resultsKeyMap{
			New:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new rehearsal")),
			Up:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑↓", "scroll")),
			Down: key.NewBinding(key.WithKeys("down")),
			Quit: key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		},
	}
}

func (v *resultsView) ID() ViewID    { return ViewResults }
func (v *resultsView) Title() string { return "Results" }
func (v *resultsView) ShortHelp() []key.Binding {
	return []key.Binding{v.keys.Up, v.keys.New, v.keys.Quit}
}

func (v *resultsView) Init() tea.Cmd {
	return loadStatsCmd(v.state, v.sessionID)
}

func (v *resultsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statsMsg:
		if msg.err != nil {
			v.err = msg.err.Error()
			return v, nil
		}
		v.stats = &msg.stats
		v.vp.SetContent(formatter.FormatResults(msg.stats))
		v.vp.GotoTop()
		return v, nil

	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = v.state.ContentHeight()
		return v, nil

	case tea.KeyMsg:
		if key.Matches(msg, v.keys.New) {
			return v, v.newRehearsal()
		}
	}

	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

// newRehearsal forgets the finished session and returns to setup.
func (v *resultsView) newRehearsal() tea.Cmd {
	_ = v.state.App.Rehearsals.Close(context.Background(), v.sessionID)
	v.state.SessionID = ""
	v.state.Phase = ""
	return resetView(newSetupView(v.state))
}

func (v *resultsView) View() string {
	if v.err != "" {
		return formatter.StyleRed.Render("Error: " + v.err)
	}
	if v.stats == nil {
		return formatter.Dim("Scoring...")
	}
	return v.vp.View()
}

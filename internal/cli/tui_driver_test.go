package cli

import (
	"testing"

	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
	"github.com/pruizcastillo-design/Oposecurity/internal/teatest"
	"github.com/stretchr/testify/require"
)

// TestDriver wraps teatest.Driver with inspection methods for appModel
// internals (view stack, shared state, command bar focus) that the generic
// driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver constructs the appModel, sets terminal size, and drains
// Init(), which starts the rehearsal right away when opts.start is set.
func NewTestDriver(t *testing.T, app *App, opts launchOptions) *TestDriver {
	t.Helper()

	m := newAppModel(app, opts)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// ── High-level helpers ───────────────────────────────────────────────────────

// Command focuses the command bar with ':', types the command, and presses
// Enter. The bar hands focus back to the view once the command runs.
func (d *TestDriver) Command(input string) {
	d.T.Helper()
	d.PressKey(':')
	d.Type(input)
	d.PressEnter()
}

// Keys presses each rune of s in turn, e.g. "3a" for GREEN then option A.
func (d *TestDriver) Keys(s string) {
	d.T.Helper()
	d.Type(s)
}

// Session returns the tracked rehearsal as stored by the service.
func (d *TestDriver) Session() *domain.Session {
	d.T.Helper()
	state := d.State()
	sess, err := state.App.Rehearsals.Get(d.T.Context(), state.SessionID)
	require.NoError(d.T, err)
	return sess
}

// ── inspection ───────────────────────────────────────────────────────────────

func (d *TestDriver) appModel() *appModel {
	m := d.Model.(appModel)
	return &m
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	v := d.appModel().activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ActiveViewTitle returns the Title() of the top view on the stack.
func (d *TestDriver) ActiveViewTitle() string {
	v := d.appModel().activeView()
	if v == nil {
		return ""
	}
	return v.Title()
}

// ViewStackIDs returns the ViewIDs of all views on the stack, bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting returns whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// CmdBarFocused returns whether the command bar currently has focus.
func (d *TestDriver) CmdBarFocused() bool {
	m := d.appModel()
	return m.cmdBar.Focused()
}

// LastOutput returns the last command output displayed in the content area.
func (d *TestDriver) LastOutput() string {
	return d.appModel().output.text
}

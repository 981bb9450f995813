package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
	"github.com/pruizcastillo-design/Oposecurity/internal/scoring"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// resetViewMsg drops the whole stack and makes view the only one.
type resetViewMsg struct {
	view View
}

// cmdOutputMsg carries text output from a command execution
// to be displayed transiently in the current view.
type cmdOutputMsg struct {
	output string
}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel handles it atomically: pop the wizard view, then run nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// sessionMsg carries the session snapshot returned by a rehearsal call.
// On failure sess is nil and err says why.
type sessionMsg struct {
	sess *domain.Session
	err  error
	note string
}

// abortedMsg reports that the rehearsal was discarded back to setup.
type abortedMsg struct {
	sessionID string
}

// statsMsg carries the results of a finished rehearsal.
type statsMsg struct {
	stats scoring.Stats
	err   error
}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// resetView returns a tea.Cmd that restarts navigation at v.
func resetView(v View) tea.Cmd {
	return func() tea.Msg { return resetViewMsg{view: v} }
}

func outputCmd(text string) tea.Cmd {
	return func() tea.Msg { return cmdOutputMsg{output: text} }
}

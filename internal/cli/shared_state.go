package cli

import (
	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
	"github.com/pruizcastillo-design/Oposecurity/internal/service"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Rehearsal in progress, or the last aborted one so the next start
	// reuses its ID.
	SessionID string
	Phase     domain.Phase

	// Answer key applied automatically on reaching CORRECTION.
	KeyName string

	// Parameters of the last started rehearsal, used to prefill setup.
	LastRequest service.StartRequest

	// Terminal dimensions
	Width  int
	Height int
}

func newSharedState(app *App) *SharedState {
	d := app.Config.Defaults
	return &SharedState{
		App: app,
		LastRequest: service.StartRequest{
			QuestionCount: d.QuestionCount,
			ErrorDivisor:  d.ErrorDivisor,
			Options:       append([]string(nil), d.Options...),
		},
	}
}

// track records the phase of the session the views are showing.
func (s *SharedState) track(sess *domain.Session) {
	s.SessionID = sess.ID()
	s.Phase = sess.Phase()
}

// InRehearsal reports whether a session is between TESTING and CORRECTION.
func (s *SharedState) InRehearsal() bool {
	return s.SessionID != "" && s.Phase.HasCursor()
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// status bar (2 lines: separator + hints), and command bar (1 line).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}

package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
	"github.com/pruizcastillo-design/Oposecurity/internal/service"
)

// rehearsalOp is one call against the rehearsal service for the tracked
// session.
type rehearsalOp func(ctx context.Context, svc service.RehearsalService, id string) (*domain.Session, error)

// rehearsalCmd runs op and reports the resulting snapshot as a sessionMsg.
func rehearsalCmd(state *SharedState, note string, op rehearsalOp) tea.Cmd {
	id := state.SessionID
	svc := state.App.Rehearsals
	return func() tea.Msg {
		sess, err := op(context.Background(), svc, id)
		if err != nil {
			return sessionMsg{err: err}
		}
		return sessionMsg{sess: sess, note: note}
	}
}

// startRehearsalCmd starts a rehearsal. An aborted session's ID is reused.
func startRehearsalCmd(state *SharedState, req service.StartRequest) tea.Cmd {
	if state.SessionID != "" && state.Phase == domain.PhaseSetup {
		req.SessionID = state.SessionID
	}
	svc := state.App.Rehearsals
	return func() tea.Msg {
		sess, err := svc.Start(context.Background(), req)
		if err != nil {
			return sessionMsg{err: err}
		}
		return sessionMsg{sess: sess, note: "First pass: rate your confidence and mark your options."}
	}
}

func abortRehearsalCmd(state *SharedState) tea.Cmd {
	id := state.SessionID
	svc := state.App.Rehearsals
	return func() tea.Msg {
		if _, err := svc.Abort(context.Background(), id); err != nil {
			return sessionMsg{err: err}
		}
		return abortedMsg{sessionID: id}
	}
}

func applyKeyCmd(state *SharedState, name string) tea.Cmd {
	return rehearsalCmd(state, fmt.Sprintf("Applied answer key %s.", name),
		func(ctx context.Context, svc service.RehearsalService, id string) (*domain.Session, error) {
			return svc.ApplyAnswerKey(ctx, id, name)
		})
}

func jumpCmd(state *SharedState, i int) tea.Cmd {
	return rehearsalCmd(state, "",
		func(ctx context.Context, svc service.RehearsalService, id string) (*domain.Session, error) {
			return svc.Jump(ctx, id, i)
		})
}

func finishPhaseCmd(state *SharedState) tea.Cmd {
	return rehearsalCmd(state, "",
		func(ctx context.Context, svc service.RehearsalService, id string) (*domain.Session, error) {
			return svc.FinishPhase(ctx, id)
		})
}

func loadStatsCmd(state *SharedState, id string) tea.Cmd {
	svc := state.App.Rehearsals
	return func() tea.Msg {
		st, err := svc.Stats(context.Background(), id)
		return statsMsg{stats: st, err: err}
	}
}

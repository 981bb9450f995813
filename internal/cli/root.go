package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pruizcastillo-design/Oposecurity/internal/config"
	"github.com/pruizcastillo-design/Oposecurity/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Rehearsals service.RehearsalService
	Keys       service.AnswerKeyService
	Config     config.Config

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	// RunProgram runs the TUI model. Nil runs a full-screen tea.Program.
	RunProgram func(m tea.Model) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "oposecurity" command and registers all
// subcommands against the provided App. Without arguments on a terminal it
// opens the rehearsal TUI at the setup form.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "oposecurity",
		Short:         "Confidence-tier exam rehearsal and scoring",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return runTUI(app, launchOptions{})
		},
	}

	root.AddCommand(
		newRehearseCmd(app),
		newScoreCmd(app),
		newKeyCmd(app),
		newConfigCmd(app),
	)

	return root
}

// runTUI builds the app model and hands it to the program runner.
func runTUI(app *App, opts launchOptions) error {
	m := newAppModel(app, opts)
	if app.RunProgram != nil {
		return app.RunProgram(m)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newRehearseCmd(app *App) *cobra.Command {
	flags := newRehearsalFlags(app.Config.Defaults)
	var keyName string

	cmd := &cobra.Command{
		Use:   "rehearse",
		Short: "Start a rehearsal directly in the first pass",
		Long: `Start a rehearsal with the given parameters, skipping the setup form.

With --key, the named answer key is applied as soon as the rehearsal
reaches the correction phase.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}
			if keyName != "" {
				if app.Keys == nil {
					return fmt.Errorf("--key: no answer-key library configured")
				}
				k, err := app.Keys.Get(context.Background(), keyName)
				if err != nil {
					return fmt.Errorf("--key %s: %w", keyName, err)
				}
				if len(k.Answers) != req.QuestionCount {
					return fmt.Errorf("--key %s has %d answers, rehearsal has %d questions",
						keyName, len(k.Answers), req.QuestionCount)
				}
			}
			if !app.interactive() {
				return fmt.Errorf("rehearse needs an interactive terminal; use 'oposecurity score FILE' to grade an answer sheet")
			}
			return runTUI(app, launchOptions{start: &req, keyName: keyName})
		},
	}

	cmd.Flags().AddFlagSet(flags.flagSet())
	cmd.Flags().StringVar(&keyName, "key", "", "Stored answer key applied on reaching correction")

	return cmd
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/pruizcastillo-design/Oposecurity/internal/cli/formatter"
	"github.com/pruizcastillo-design/Oposecurity/internal/importer"
	"github.com/pruizcastillo-design/Oposecurity/internal/scoring"
	"github.com/spf13/cobra"
)

func newScoreCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "score FILE",
		Short: "Grade a completed answer sheet (JSON or YAML)",
		Long: `Replay an answer sheet through the three passes and print the results.

The sheet lists one entry per question with its confidence tier, the
provisional options marked on the first pass, the final answer and the
correct answer. A sheet without error_divisor uses the configured default.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheet, err := importer.LoadSheetFile(args[0])
			if err != nil {
				return err
			}
			sess, err := importer.ReplaySheet(sheet, app.Config.Defaults.ErrorDivisor)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			st := scoring.Compute(sess)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(st)
			}
			fmt.Fprintln(out, formatter.FormatResults(st))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")

	return cmd
}

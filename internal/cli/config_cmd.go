package cli

import (
	"fmt"

	"github.com/pruizcastillo-design/Oposecurity/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := app.Config.Marshal()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if app.Config.Path != "" {
					fmt.Fprintf(out, "# %s\n", app.Config.Path)
				}
				_, err = out.Write(data)
				return err
			},
		},
		newConfigInitCmd(app),
	)

	return cmd
}

func newConfigInitCmd(app *App) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := path
			if target == "" {
				target = app.Config.Path
			}
			if target == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				target = p
			}
			if err := config.WriteDefault(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Where to write the file (defaults to the active config path)")

	return cmd
}

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/pruizcastillo-design/Oposecurity/internal/cli/formatter"
	"github.com/pruizcastillo-design/Oposecurity/internal/importer"
	"github.com/pruizcastillo-design/Oposecurity/internal/repository"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errNoKeyLibrary = errors.New("no answer-key library configured")

func newKeyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage stored answer keys",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Keys == nil {
				return errNoKeyLibrary
			}
			return nil
		},
	}

	cmd.AddCommand(
		newKeyImportCmd(app),
		newKeyListCmd(app),
		newKeyShowCmd(app),
		newKeyRemoveCmd(app),
	)

	return cmd
}

func newKeyImportCmd(app *App) *cobra.Command {
	var name string
	var replace bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import an answer key from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := app.Keys.Import(context.Background(), args[0], name, replace)
			if errors.Is(err, repository.ErrDuplicateName) {
				return fmt.Errorf("%w (use --replace to overwrite)", err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported answer key %s (%d answers)\n", k.Name, len(k.Answers))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Key name (defaults to the name in the file)")
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace an existing key with the same name")

	return cmd
}

func newKeyListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored answer keys",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := app.Keys.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatKeyList(keys))
			return nil
		},
	}
}

func newKeyShowCmd(app *App) *cobra.Command {
	var export bool

	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Show one answer key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := app.Keys.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			if export {
				data, err := yaml.Marshal(importer.KeyFileFrom(k))
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatKeyDetail(k))
			return nil
		},
	}

	cmd.Flags().BoolVar(&export, "export", false, "Print the key as an importable YAML file")

	return cmd
}

func newKeyRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Delete a stored answer key",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Keys.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed answer key %s\n", args[0])
			return nil
		},
	}
}

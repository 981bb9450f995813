package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pruizcastillo-design/Oposecurity/internal/cli"
	"github.com/pruizcastillo-design/Oposecurity/internal/config"
	"github.com/pruizcastillo-design/Oposecurity/internal/db"
	"github.com/pruizcastillo-design/Oposecurity/internal/repository"
	"github.com/pruizcastillo-design/Oposecurity/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Config file, then OPOSECURITY_* overrides.
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	alphabet, err := cfg.Alphabet()
	if err != nil {
		return err
	}

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	observer, closeLog, err := useCaseObserver(cfg, interactive, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	// Open the answer-key library
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	keyRepo := repository.NewSQLiteAnswerKeyRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Rehearsals: service.NewRehearsalService(alphabet, keyRepo, observer),
		Keys:       service.NewAnswerKeyService(keyRepo, uow, alphabet, observer),
		Config:     cfg,
	}

	// Detect interactive terminal for the TUI entrypoints.
	app.IsInteractive = func() bool { return interactive }

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// useCaseObserver picks where service events go: the configured log file,
// stderr when log_usecases is on and the TUI cannot own the terminal, or
// nowhere.
func useCaseObserver(cfg config.Config, interactive bool, stderr io.Writer) (service.UseCaseObserver, func(), error) {
	var w io.Writer
	closeFn := func() {}
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case cfg.LogUseCases && !interactive:
		w = stderr
	default:
		return service.NoopUseCaseObserver{}, closeFn, nil
	}
	return service.NewLogUseCaseObserver(w, service.LogFormat(cfg.LogFormat)), closeFn, nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/mkorotkov/sparkmatch/internal/client/api"
	"github.com/mkorotkov/sparkmatch/internal/client/config"
	sessionrepo "github.com/mkorotkov/sparkmatch/internal/client/repositories/session"
	"github.com/mkorotkov/sparkmatch/internal/client/services"
	"github.com/mkorotkov/sparkmatch/internal/client/tui"
	"github.com/mkorotkov/sparkmatch/internal/logging"

	_ "modernc.org/sqlite"
)

// logFileName sits next to the session database. The TUI owns the
// terminal, so logs go to a file instead of stderr.
const logFileName = "sparkmatch.log"

func run() error {
	// .env is optional; real settings may also come from JSON, env or flags
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("sparkmatch is interactive and needs a terminal")
	}

	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(logFile, nil)))

	ctx := context.Background()

	db, err := sessionrepo.OpenDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open session database: %w", err)
	}
	defer db.Close()

	client := api.NewHTTPClient(cfg.ServerEndpointAddr, cfg.RequestTimeout, log)

	deps := &tui.Deps{
		Session: services.NewSessionManager(client, db, log),
		API:     client,
		Config:  cfg,
		Log:     log,
	}

	log.Info(ctx, "starting sparkmatch", "server", cfg.ServerEndpointAddr, "db", cfg.DatabasePath)

	_, err = tea.NewProgram(tui.InitialRootModel(deps), tea.WithAltScreen()).Run()
	return err
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

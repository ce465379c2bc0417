package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/gofish/internal/config"
	"github.com/lox/gofish/internal/game"
	"github.com/lox/gofish/internal/randutil"
	"github.com/lox/gofish/internal/tui"
)

// App owns everything one interactive session needs. It replaces
// process-wide state: build it with NewApp, run it once, then Close it.
type App struct {
	cfg     *config.Config
	seed    int64
	clock   quartz.Clock
	logger  *log.Logger
	logFile io.Closer
	model   *tui.Model
}

// NewApp opens the log file and builds the TUI model from cfg
func NewApp(cfg *config.Config, clock quartz.Clock) (*App, error) {
	logFile, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "GOFISH",
		Level:           cfg.LogLevel(),
	})

	a := &App{
		cfg:     cfg,
		seed:    randutil.ResolveSeed(cfg.Game.Seed, clock),
		clock:   clock,
		logger:  logger,
		logFile: logFile,
	}
	a.model = tui.NewModel(a.newEngine, logger, cfg.Game.PlayerName)
	return a, nil
}

// newEngine is the factory handed to the TUI once the player has a name
func (a *App) newEngine(playerName string) (*game.Engine, error) {
	a.logger.Info("Starting game", "player", playerName, "seed", a.seed)
	return game.NewEngine(randutil.New(a.seed), playerName,
		game.WithComputerName(a.cfg.Game.ComputerName),
		game.WithClock(a.clock),
		game.WithLogger(a.logger),
		game.WithSubscriber(game.NewLoggingSubscriber(a.logger)),
	)
}

// Run shows the window until the player quits or ctx is cancelled
func (a *App) Run(ctx context.Context) error {
	program := tea.NewProgram(a.model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// Close releases the log file
func (a *App) Close() error {
	a.logger.Info("Session closed")
	return a.logFile.Close()
}

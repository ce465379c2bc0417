package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/gofish/internal/randutil"
	"github.com/lox/gofish/internal/simulator"
)

type SimulateCmd struct {
	Games   int   `kong:"default='1000',help='Number of games to play'"`
	Seed    int64 `kong:"default='0',help='RNG seed (0 for random)'"`
	Workers int   `kong:"default='0',help='Concurrent games (0 for GOMAXPROCS)'"`
	Verbose bool  `kong:"short='V',help='Verbose logging'"`
}

func (c *SimulateCmd) Run() error {
	if c.Games <= 0 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}

	level := log.WarnLevel
	if c.Verbose {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "SIM",
		Level:           level,
	})

	seed := randutil.ResolveSeed(c.Seed, quartz.NewReal())
	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	stats, err := simulator.New(simulator.Config{
		Games:   c.Games,
		Seed:    seed,
		Workers: c.Workers,
		Logger:  logger,
	}).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("seed=%d %s\n", seed, stats)
	return nil
}

package main

import (
	"github.com/coder/quartz"

	"github.com/lox/gofish/internal/config"
)

type PlayCmd struct {
	Config   string `kong:"default='gofish.hcl',help='Path to HCL config file (missing file uses defaults)'"`
	Seed     int64  `kong:"default='0',help='RNG seed (0 uses the config seed, or the clock)'"`
	LogFile  string `kong:"default='',help='Log file path (overrides config)'"`
	LogLevel string `kong:"default='',help='Log level: debug, info, warn, error (overrides config)'"`
	Name     string `kong:"default='',help='Pre-fill the player name'"`
}

// loadConfig reads the config file and applies command-line overrides
func (c *PlayCmd) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if c.Seed != 0 {
		cfg.Game.Seed = c.Seed
	}
	if c.LogFile != "" {
		cfg.UI.LogFile = c.LogFile
	}
	if c.LogLevel != "" {
		cfg.UI.LogLevel = c.LogLevel
	}
	if c.Name != "" {
		cfg.Game.PlayerName = c.Name
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *PlayCmd) Run() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	app, err := NewApp(cfg, quartz.NewReal())
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := setupSignalHandler(app.logger)
	defer cancel()

	return app.Run(ctx)
}

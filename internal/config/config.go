package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultPath is where the game looks for its config file
const DefaultPath = "gofish.hcl"

// Config represents the complete game configuration
type Config struct {
	Game *GameSettings `hcl:"game,block"`
	UI   *UISettings   `hcl:"ui,block"`
}

// GameSettings contains rule-independent game settings
type GameSettings struct {
	PlayerName   string `hcl:"player_name,optional"`
	ComputerName string `hcl:"computer_name,optional"`
	Seed         int64  `hcl:"seed,optional"`
}

// UISettings contains user interface and logging settings
type UISettings struct {
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Game: &GameSettings{
			PlayerName:   "",
			ComputerName: "Computer",
			Seed:         0,
		},
		UI: &UISettings{
			LogLevel: "info",
			LogFile:  "gofish.log",
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Game == nil {
		c.Game = defaults.Game
	}
	if c.UI == nil {
		c.UI = defaults.UI
	}
	if c.Game.ComputerName == "" {
		c.Game.ComputerName = defaults.Game.ComputerName
	}
	if c.UI.LogLevel == "" {
		c.UI.LogLevel = defaults.UI.LogLevel
	}
	if c.UI.LogFile == "" {
		c.UI.LogFile = defaults.UI.LogFile
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Game.ComputerName) == "" {
		return fmt.Errorf("computer name must not be blank")
	}
	if strings.EqualFold(strings.TrimSpace(c.Game.PlayerName), strings.TrimSpace(c.Game.ComputerName)) {
		return fmt.Errorf("player name %q clashes with the computer's name", c.Game.PlayerName)
	}
	if _, err := log.ParseLevel(c.UI.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}
	return nil
}

// LogLevel returns the parsed log level, falling back to info
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.UI.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

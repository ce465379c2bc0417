package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play Go Fish against the computer (default)"`
	Simulate SimulateCmd      `cmd:"" help:"Play computer-vs-computer games and report win rates"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("gofish"),
		kong.Description("Go Fish in your terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	NoColor bool             `name:"no-color" help:"Disable coloured output"`

	Solve    SolveCmd    `cmd:"" help:"Solve for the optimal policy and print it as JSON"`
	Hints    HintsCmd    `cmd:"" help:"Show one-step hints for scores typed at a prompt"`
	Simulate SimulateCmd `cmd:"" help:"Play many games with a strategy and summarise the profit"`
	Presets  PresetsCmd  `cmd:"" help:"List the available payout tables"`
}

func (c *CLI) AfterApply() error {
	if c.NoColor {
		disableColor()
	}
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("scoremdp"),
		kong.Description("Optimal stopping policies for a press-your-luck scoring game"),
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

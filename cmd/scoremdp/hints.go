package main

import (
	"os"

	"github.com/lox/scoremdp/internal/hints"
	"github.com/lox/scoremdp/internal/tui"
)

// HintsCmd prints naive one-step advice
type HintsCmd struct {
	GameFlags `embed:""`

	Debug bool `kong:"help='Enable debug logging; with --all print raw expected profits'"`
	All   bool `kong:"help='Print a suggestion for every score and exit'"`
	TUI   bool `kong:"name='tui',help='Use the full-screen interface'"`
}

func (c *HintsCmd) Run() error {
	logger := setupLogger(c.Debug)
	ctx := setupSignalHandler(logger)

	game, err := c.Game()
	if err != nil {
		return err
	}
	advisor := hints.NewAdvisor(game)

	if c.All {
		return advisor.WriteAll(os.Stdout, c.Debug)
	}
	if c.TUI {
		return tui.Run(ctx, advisor, logger)
	}
	return hints.NewSession(os.Stdin, os.Stdout, advisor, logger).Run(ctx)
}

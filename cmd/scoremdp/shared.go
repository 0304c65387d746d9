package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/scoremdp/internal/config"
)

// setupLogger returns the stderr logger used by every command.
func setupLogger(debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: debug,
	})
}

// setupSignalHandler creates a context that is cancelled on interrupt signals
func setupSignalHandler(logger *log.Logger) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	return ctx
}

func disableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// GameFlags selects the payout table a command runs against.
type GameFlags struct {
	Preset string `kong:"default='normalized',help='Payout table to use'"`
	Config string `kong:"type='path',help='HCL file of extra payout tables'"`
}

// Configs returns every table: the built-ins plus those in --config.
func (g GameFlags) Configs() ([]*config.Config, error) {
	if g.Config == "" {
		return config.Builtins(), nil
	}
	return config.LoadFile(g.Config)
}

// Game returns the table selected by --preset.
func (g GameFlags) Game() (*config.Config, error) {
	cfgs, err := g.Configs()
	if err != nil {
		return nil, err
	}
	return config.Select(cfgs, g.Preset)
}

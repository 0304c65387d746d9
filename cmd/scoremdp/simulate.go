package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/scoremdp/internal/hints"
	"github.com/lox/scoremdp/internal/report"
	"github.com/lox/scoremdp/internal/simulator"
	"github.com/lox/scoremdp/internal/solver"
)

// SimulateCmd plays games with a strategy and reports the realised profit
type SimulateCmd struct {
	GameFlags `embed:""`

	Debug    bool   `kong:"help='Enable debug logging'"`
	Games    int    `kong:"default='100000',help='Number of games to play'"`
	Seed     *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Workers  int    `kong:"default='0',help='Worker goroutines (0 = GOMAXPROCS)'"`
	Start    int    `kong:"default='1',help='Score each game starts from'"`
	Strategy string `kong:"default='optimal',enum='optimal,advisor',help='Strategy to play (optimal, advisor)'"`
}

func (c *SimulateCmd) Run() error {
	logger := setupLogger(c.Debug)
	ctx := setupSignalHandler(logger)

	game, err := c.Game()
	if err != nil {
		return err
	}

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
		logger.Info("Using deterministic seed", "seed", seed)
	} else {
		seed = time.Now().UnixNano()
		logger.Info("Using random seed", "seed", seed)
	}

	res, err := solver.Solve(ctx, game, solver.WithLogger(logger))
	if err != nil {
		return err
	}

	var strategy simulator.Strategy
	switch c.Strategy {
	case "optimal":
		strategy = res.Policy
	case "advisor":
		strategy = hints.NewAdvisorStrategy(game)
	default:
		return fmt.Errorf("unknown strategy %q", c.Strategy)
	}

	summary, err := simulator.Run(ctx, simulator.Config{
		Games:      c.Games,
		StartScore: c.Start,
		Seed:       seed,
		Workers:    c.Workers,
		Logger:     logger,
	}, game, strategy)
	if err != nil {
		return err
	}

	expected := res.Value(c.Start)
	return report.WriteSimulation(os.Stdout, summary, &expected)
}

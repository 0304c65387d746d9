package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lox/scoremdp/internal/config"
	"github.com/lox/scoremdp/internal/report"
	"github.com/lox/scoremdp/internal/solver"
)

// SolveCmd runs value iteration and writes the optimal policy
type SolveCmd struct {
	GameFlags `embed:""`

	Debug         bool    `kong:"help='Enable debug logging'"`
	Discount      float64 `kong:"default='1',help='Discount factor in (0, 1]'"`
	Epsilon       float64 `kong:"default='0.0001',help='Convergence tolerance'"`
	MaxIterations int     `kong:"default='100000',help='Give up after this many sweeps'"`
	Out           string  `kong:"type='path',help='Write the policy JSON here instead of stdout'"`
	Chart         string  `kong:"type='path',help='Render an HTML chart of the value function'"`
	Summary       bool    `kong:"help='Print a table of the policy and its values to stderr'"`
	All           bool    `kong:"help='Solve every payout table'"`
}

func (c *SolveCmd) Run() error {
	logger := setupLogger(c.Debug)
	ctx := setupSignalHandler(logger)

	var cfgs []*config.Config
	if c.All {
		all, err := c.Configs()
		if err != nil {
			return err
		}
		cfgs = all
	} else {
		game, err := c.Game()
		if err != nil {
			return err
		}
		cfgs = []*config.Config{game}
	}

	opts := solver.Options{
		Discount:      c.Discount,
		Epsilon:       c.Epsilon,
		MaxIterations: c.MaxIterations,
	}
	results, err := solver.SolveAll(ctx, cfgs,
		solver.WithOptions(opts),
		solver.WithLogger(logger),
		solver.WithProgressEvery(1000),
	)
	if err != nil {
		return err
	}

	for _, res := range results {
		logger.Info("Solved",
			"config", res.Config.Name(),
			"iterations", res.Iterations,
			"elapsed", res.Elapsed)

		if c.Summary {
			if err := report.WriteSummary(os.Stderr, res); err != nil {
				return err
			}
		}
		if c.Chart != "" {
			path := c.Chart
			if c.All {
				path = chartPath(c.Chart, res.Config.Name())
			}
			if err := report.SaveValueChart(path, res); err != nil {
				return err
			}
			logger.Info("Wrote chart", "path", path)
		}
	}

	return c.writePolicies(results)
}

func (c *SolveCmd) writePolicies(results []*solver.Result) error {
	if c.Out != "" {
		var err error
		if c.All {
			err = report.SavePolicies(c.Out, results)
		} else {
			err = report.SavePolicy(c.Out, results[0].Policy)
		}
		if err != nil {
			return fmt.Errorf("write policy: %w", err)
		}
		return nil
	}

	if c.All {
		data, err := report.MarshalPolicies(results)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}
	return report.WritePolicy(os.Stdout, results[0].Policy)
}

// chartPath inserts the config name before the extension: values.html
// becomes values-normalized.html.
func chartPath(path, name string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + name + ext
}

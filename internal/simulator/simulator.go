// Package simulator plays many games with a strategy and summarises the
// realised profit, as an empirical check on a solved policy or on the
// naive hint advice.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	rand "math/rand/v2"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lox/scoremdp/internal/action"
	"github.com/lox/scoremdp/internal/config"
	"github.com/lox/scoremdp/internal/randutil"
)

// Strategy picks the action to take at a score.
type Strategy interface {
	Choose(score int) (action.Action, error)
}

// Config holds configuration for running simulations
type Config struct {
	Games      int
	StartScore int
	Seed       int64
	Workers    int
	Logger     *log.Logger
}

// Validate checks the run parameters against the game.
func (c Config) Validate(game *config.Config) error {
	if c.Games <= 0 {
		return fmt.Errorf("games must be > 0, got %d", c.Games)
	}
	if c.StartScore < 1 || c.StartScore > game.MaxScore() {
		return fmt.Errorf("start score must be between 1 and %d, got %d", game.MaxScore(), c.StartScore)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	return nil
}

// Summary describes the profit distribution over all simulated games.
type Summary struct {
	Games    int
	Mean     float64
	StdDev   float64
	StdError float64
	CI95Low  float64
	CI95High float64
	// Busts counts games that overshot the max score.
	Busts int
	// Payouts counts games that ended by banking a score.
	Payouts      int
	ActionCounts map[string]int
}

// Contains reports whether v lies within the 95% confidence interval.
func (s *Summary) Contains(v float64) bool {
	return v >= s.CI95Low && v <= s.CI95High
}

// Simulator runs games for one config and strategy.
type Simulator struct {
	config   Config
	game     *config.Config
	strategy Strategy
	logger   *log.Logger
}

// New creates a simulator. StartScore defaults to 1 and Workers to
// GOMAXPROCS.
func New(cfg Config, game *config.Config, strategy Strategy) (*Simulator, error) {
	if game == nil {
		return nil, errors.New("nil game config")
	}
	if strategy == nil {
		return nil, errors.New("nil strategy")
	}
	if cfg.StartScore == 0 {
		cfg.StartScore = 1
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if err := cfg.Validate(game); err != nil {
		return nil, err
	}
	if cfg.Workers > cfg.Games {
		cfg.Workers = cfg.Games
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Simulator{
		config:   cfg,
		game:     game,
		strategy: strategy,
		logger:   logger.WithPrefix("simulator"),
	}, nil
}

type tally struct {
	profits []float64
	busts   int
	payouts int
	actions []int
}

// Run plays every game and returns the summary. Games are split evenly
// across workers, each with its own deterministic random stream, so a run
// is reproducible for a given seed and worker count.
func (s *Simulator) Run(ctx context.Context) (*Summary, error) {
	workers := s.config.Workers
	tallies := make([]tally, workers)

	s.logger.Debug("starting simulation",
		"config", s.game.Name(),
		"games", s.config.Games,
		"workers", workers,
		"seed", s.config.Seed,
		"start", s.config.StartScore)

	g, ctx := errgroup.WithContext(ctx)
	per, rem := s.config.Games/workers, s.config.Games%workers
	for w := 0; w < workers; w++ {
		n := per
		if w < rem {
			n++
		}
		g.Go(func() error {
			rng := randutil.Stream(s.config.Seed, w)
			t := &tallies[w]
			t.profits = make([]float64, 0, n)
			t.actions = make([]int, action.Count())
			for i := 0; i < n; i++ {
				if i%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				if err := s.play(rng, t); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := s.summarise(tallies)
	s.logger.Debug("simulation complete",
		"mean", summary.Mean,
		"std_error", summary.StdError,
		"busts", summary.Busts)
	return summary, nil
}

// play runs one game from the start score and records it in t.
func (s *Simulator) play(rng *rand.Rand, t *tally) error {
	score := s.config.StartScore
	for {
		a, err := s.strategy.Choose(score)
		if err != nil {
			return fmt.Errorf("choose at score %d: %w", score, err)
		}
		if !a.IsAvailable(s.game, score) {
			return fmt.Errorf("strategy chose %s at score %d where it is not allowed", a, score)
		}
		t.actions[a.ID()]++

		if a.Terminal() {
			t.profits = append(t.profits, s.game.Profit(score))
			t.payouts++
			return nil
		}

		low, high := a.Bounds()
		score += randutil.Between(rng, low, high)
		if score > s.game.MaxScore() {
			// Any overshoot is priced as the first score past the ceiling.
			t.profits = append(t.profits, s.game.Profit(s.game.BustScore()))
			t.busts++
			return nil
		}
	}
}

func (s *Simulator) summarise(tallies []tally) *Summary {
	profits := make([]float64, 0, s.config.Games)
	summary := &Summary{ActionCounts: make(map[string]int, action.Count())}
	for _, t := range tallies {
		profits = append(profits, t.profits...)
		summary.Busts += t.busts
		summary.Payouts += t.payouts
		for id, n := range t.actions {
			if n == 0 {
				continue
			}
			a, _ := action.ByID(action.ID(id))
			summary.ActionCounts[a.Label()] += n
		}
	}

	n := len(profits)
	summary.Games = n
	mean, std := stat.MeanStdDev(profits, nil)
	if n < 2 || math.IsNaN(std) {
		std = 0
	}
	summary.Mean = mean
	summary.StdDev = std
	summary.CI95Low, summary.CI95High = calculateCI95(mean, std, n)
	if n > 0 {
		summary.StdError = std / math.Sqrt(float64(n))
	}
	return summary
}

// calculateCI95 calculates 95% confidence interval using t-distribution
func calculateCI95(mean, stdDev float64, n int) (float64, float64) {
	if n <= 1 {
		return mean, mean
	}

	se := stdDev / math.Sqrt(float64(n))
	tDist := distuv.StudentsT{
		Nu:    float64(n - 1),
		Mu:    0,
		Sigma: 1,
	}
	margin := tDist.Quantile(0.975) * se
	return mean - margin, mean + margin
}

// Run is a convenience wrapper around New and Simulator.Run.
func Run(ctx context.Context, cfg Config, game *config.Config, strategy Strategy) (*Summary, error) {
	s, err := New(cfg, game, strategy)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx)
}

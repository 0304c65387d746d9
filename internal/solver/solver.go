// Package solver computes the optimal policy for a scoring game by running
// value iteration over its MDP formulation.
package solver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"gonum.org/v1/gonum/mat"
	"golang.org/x/sync/errgroup"

	"github.com/lox/scoremdp/internal/config"
	"github.com/lox/scoremdp/internal/mdp"
)

// Result is the outcome of a converged solve.
type Result struct {
	Config *config.Config
	Policy *Policy
	// Values holds the optimal expected profit for each playable score.
	Values map[int]float64
	// ActionValues holds, per score, the expected profit of each permitted
	// action followed by optimal play.
	ActionValues map[int]map[string]float64
	Iterations   int
	Variation    float64
	Elapsed      time.Duration
}

// Value returns the optimal expected profit at score.
func (r *Result) Value(score int) float64 {
	return r.Values[score]
}

// Solver runs value iteration for one config.
type Solver struct {
	cfg           *config.Config
	opts          Options
	logger        *log.Logger
	clock         quartz.Clock
	progressEvery int
}

// Option customises a Solver.
type Option func(*Solver)

// WithOptions replaces the default iteration options.
func WithOptions(opts Options) Option {
	return func(s *Solver) {
		s.opts = opts
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(logger *log.Logger) Option {
	return func(s *Solver) {
		if logger != nil {
			s.logger = logger.WithPrefix("solver")
		}
	}
}

// WithClock sets the clock used to time solves.
func WithClock(clock quartz.Clock) Option {
	return func(s *Solver) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithProgressEvery logs a debug progress line every n sweeps. Zero disables it.
func WithProgressEvery(n int) Option {
	return func(s *Solver) {
		s.progressEvery = n
	}
}

// New constructs a solver for cfg.
func New(cfg *config.Config, opts ...Option) (*Solver, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}
	s := &Solver{
		cfg:    cfg,
		opts:   DefaultOptions(),
		logger: log.New(io.Discard),
		clock:  quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.opts.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Options returns the iteration options in use.
func (s *Solver) Options() Options {
	return s.opts
}

// Solve formulates the MDP and iterates
//
//	V'(s) = max_a R(s,a) + discount * Σ_to T[a][s][to] V(to)
//
// from V = 0 until no state's value moves by Options.Threshold or more.
// Ties between actions go to the earliest in catalog order. If the
// iteration cap is reached first, Solve returns a *ConvergenceError.
func (s *Solver) Solve(ctx context.Context) (*Result, error) {
	start := s.clock.Now()

	model := mdp.Formulate(s.cfg)
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("formulate %s: %w", s.cfg, err)
	}

	n := model.NumStates()
	discount := s.opts.Discount
	threshold := s.opts.Threshold()

	values := mat.NewVecDense(n, nil)
	next := mat.NewVecDense(n, nil)
	expected := mat.NewVecDense(n, nil)
	q := mat.NewDense(n, model.NumActions(), nil)
	best := make([]int, n)

	s.logger.Debug("starting value iteration",
		"config", s.cfg.Name(),
		"states", n,
		"actions", model.NumActions(),
		"discount", discount,
		"threshold", threshold,
		"max_iterations", s.opts.MaxIterations)

	var variation float64
	iterations := 0
	converged := false
	for iterations < s.opts.MaxIterations {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		s.sweep(model, values, next, expected, q, best)
		iterations++

		variation = maxAbsDiff(next, values)
		values, next = next, values

		if s.progressEvery > 0 && iterations%s.progressEvery == 0 {
			s.logger.Debug("progress", "iteration", iterations, "variation", variation)
		}
		if variation < threshold {
			converged = true
			break
		}
	}

	if !converged {
		return nil, &ConvergenceError{
			Iterations: iterations,
			Variation:  variation,
			Threshold:  threshold,
		}
	}

	res, err := s.result(model, q, best)
	if err != nil {
		return nil, err
	}
	res.Iterations = iterations
	res.Variation = variation
	res.Elapsed = s.clock.Since(start)

	s.logger.Debug("value iteration converged",
		"config", s.cfg.Name(),
		"iterations", iterations,
		"variation", variation,
		"elapsed", res.Elapsed)
	return res, nil
}

// sweep computes one Bellman backup of values into next. The action values
// it maximised over are left in q and the greedy action per state in best,
// so next[s] == q[s][best[s]] exactly.
func (s *Solver) sweep(model *mdp.Model, values, next, expected *mat.VecDense, q *mat.Dense, best []int) {
	n := model.NumStates()
	for st := 0; st < n; st++ {
		next.SetVec(st, math.Inf(-1))
		best[st] = -1
	}

	for ai, t := range model.Transitions {
		expected.MulVec(t, values)
		for st := 0; st < n; st++ {
			v := model.Rewards.At(st, ai) + s.opts.Discount*expected.AtVec(st)
			q.Set(st, ai, v)
			if v > next.AtVec(st) {
				next.SetVec(st, v)
				best[st] = ai
			}
		}
	}

	for st := 0; st < n; st++ {
		if best[st] < 0 {
			// Validate guarantees a finite reward in every state.
			panic(fmt.Sprintf("solver: no permitted action in state %s", model.StateName(st)))
		}
	}
}

// result reads the policy and both value tables from the final sweep, so
// Values[s] is the value of the chosen action in ActionValues[s].
func (s *Solver) result(model *mdp.Model, q *mat.Dense, best []int) (*Result, error) {
	scores := s.cfg.Scores()
	entries := make([]Entry, 0, len(scores))
	res := &Result{
		Config:       s.cfg,
		Values:       make(map[int]float64, len(scores)),
		ActionValues: make(map[int]map[string]float64, len(scores)),
	}

	for _, score := range scores {
		st := model.StateIndex(score)
		qs := make(map[string]float64, model.NumActions())
		for ai, a := range model.Actions {
			if v := q.At(st, ai); !math.IsInf(v, -1) {
				qs[a.Label()] = v
			}
		}
		res.ActionValues[score] = qs
		res.Values[score] = q.At(st, best[st])
		entries = append(entries, Entry{Score: score, Action: model.Actions[best[st]]})
	}

	policy, err := NewPolicy(entries)
	if err != nil {
		return nil, err
	}
	res.Policy = policy
	return res, nil
}

func maxAbsDiff(a, b *mat.VecDense) float64 {
	var out float64
	for i := 0; i < a.Len(); i++ {
		if d := math.Abs(a.AtVec(i) - b.AtVec(i)); d > out {
			out = d
		}
	}
	return out
}

// Solve is a convenience wrapper around New and Solver.Solve.
func Solve(ctx context.Context, cfg *config.Config, opts ...Option) (*Result, error) {
	s, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return s.Solve(ctx)
}

// SolveAll solves several configs concurrently. Each solve builds its own
// model, so nothing is shared between them. Results are returned in the
// order of cfgs; the first failure cancels the rest.
func SolveAll(ctx context.Context, cfgs []*config.Config, opts ...Option) ([]*Result, error) {
	results := make([]*Result, len(cfgs))
	g, ctx := errgroup.WithContext(ctx)
	for i, cfg := range cfgs {
		g.Go(func() error {
			res, err := Solve(ctx, cfg, opts...)
			if err != nil {
				return fmt.Errorf("solve %s: %w", cfg.Name(), err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

package solver

import (
	"errors"
	"fmt"
	"math"
)

// Options control value iteration.
type Options struct {
	// Discount is the per-step discount factor in (0, 1]. 1 is undiscounted,
	// which converges because every game terminates.
	Discount float64
	// Epsilon is the stopping tolerance. See Options.Threshold.
	Epsilon float64
	// MaxIterations caps the number of sweeps before giving up.
	MaxIterations int
}

// DefaultOptions returns undiscounted iteration with a 1e-4 tolerance.
func DefaultOptions() Options {
	return Options{
		Discount:      1,
		Epsilon:       0.0001,
		MaxIterations: 100000,
	}
}

// Validate ensures the options are safe to use.
func (o Options) Validate() error {
	if math.IsNaN(o.Discount) || o.Discount <= 0 || o.Discount > 1 {
		return fmt.Errorf("discount must be in (0, 1], got %v", o.Discount)
	}
	if math.IsNaN(o.Epsilon) || o.Epsilon < 0 {
		return fmt.Errorf("epsilon must be >= 0, got %v", o.Epsilon)
	}
	if o.MaxIterations <= 0 {
		return errors.New("max iterations must be > 0")
	}
	return nil
}

// Threshold is the largest per-state change in value that counts as
// converged: epsilon*(1-discount)/discount when discounting, and epsilon
// itself for undiscounted iteration.
func (o Options) Threshold() float64 {
	if o.Discount < 1 {
		return o.Epsilon * (1 - o.Discount) / o.Discount
	}
	return o.Epsilon
}

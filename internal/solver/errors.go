package solver

import "fmt"

// ConvergenceError reports that value iteration hit its iteration cap before
// the value function settled. No policy is returned alongside it.
type ConvergenceError struct {
	Iterations int
	// Variation is the largest per-state change in the final sweep.
	Variation float64
	Threshold float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("value iteration did not converge after %d iterations (variation %g, threshold %g)",
		e.Iterations, e.Variation, e.Threshold)
}

package hints

import (
	"fmt"

	"github.com/lox/scoremdp/internal/action"
	"github.com/lox/scoremdp/internal/config"
)

// AdvisorStrategy plays the naive suggestion. When the suggested action is
// not allowed at the score it falls back to the first allowed action in
// catalog order.
type AdvisorStrategy struct {
	advisor *Advisor
}

// NewAdvisorStrategy returns a strategy for cfg.
func NewAdvisorStrategy(cfg *config.Config) *AdvisorStrategy {
	return &AdvisorStrategy{advisor: NewAdvisor(cfg)}
}

// Choose returns the action to take at score.
func (s *AdvisorStrategy) Choose(score int) (action.Action, error) {
	cfg := s.advisor.Config()
	suggested := s.advisor.Suggest(score)
	for _, a := range suggested.Actions {
		if a.IsAvailable(cfg, score) {
			return a, nil
		}
	}
	available := action.Available(cfg, score).Actions()
	if len(available) == 0 {
		return action.Action{}, fmt.Errorf("no action available at score %d", score)
	}
	return available[0], nil
}

// Package statistics computes closed-form expectations for a single decision
// at a given score: how likely each action is to bust, and what it pays and
// earns on average.
//
// Every increment in an action's range is equally likely, so each figure is
// a plain arithmetic mean over the range.
package statistics

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/lox/scoremdp/internal/action"
	"github.com/lox/scoremdp/internal/config"
)

// ForAction holds the statistics for taking one action at one score.
type ForAction struct {
	ProbabilityAboveMaxScore float64 `json:"probability_above_max_score"`
	ExpectedPayout           float64 `json:"expected_payout"`
	ExpectedProfit           float64 `json:"expected_profit"`
}

// Statistics bundles the per-action figures for a score.
type Statistics struct {
	Score       int       `json:"score"`
	OneToEight  ForAction `json:"action_1_8"`
	FourToSeven ForAction `json:"action_4_7"`
	// AnyAction is the unweighted average of the two range actions.
	AnyAction ForAction `json:"any_action"`
	// Payout treats banking now as the degenerate range [0, 0].
	Payout ForAction `json:"payout"`
}

// ComputeForScore evaluates every action at score.
func ComputeForScore(cfg *config.Config, score int) Statistics {
	oneToEight := ComputeForRange(cfg, score, action.OneToEight)
	fourToSeven := ComputeForRange(cfg, score, action.FourToSeven)

	return Statistics{
		Score:       score,
		OneToEight:  oneToEight,
		FourToSeven: fourToSeven,
		AnyAction: ForAction{
			ProbabilityAboveMaxScore: (oneToEight.ProbabilityAboveMaxScore + fourToSeven.ProbabilityAboveMaxScore) / 2,
			ExpectedPayout:           (oneToEight.ExpectedPayout + fourToSeven.ExpectedPayout) / 2,
			ExpectedProfit:           (oneToEight.ExpectedProfit + fourToSeven.ExpectedProfit) / 2,
		},
		Payout: forIncrements(cfg, score, 0, 0),
	}
}

// ComputeForRange evaluates a range action at score. Payout is evaluated as
// the [0, 0] range.
func ComputeForRange(cfg *config.Config, score int, a action.Action) ForAction {
	low, high := a.Bounds()
	return forIncrements(cfg, score, low, high)
}

// ComputeForAction evaluates an increment drawn uniformly from [low, high]
// at score. Payout and profit use the config's total lookups, so scores past
// the table contribute 0 payout and -EntryCost profit. Reversed bounds are
// an error.
func ComputeForAction(cfg *config.Config, score, low, high int) (ForAction, error) {
	if high < low {
		return ForAction{}, fmt.Errorf("invalid increment range [%d, %d]: high is below low", low, high)
	}
	return forIncrements(cfg, score, low, high), nil
}

// forIncrements requires low <= high.
func forIncrements(cfg *config.Config, score, low, high int) ForAction {
	n := high - low + 1

	busts := make([]float64, 0, n)
	payouts := make([]float64, 0, n)
	profits := make([]float64, 0, n)
	for k := low; k <= high; k++ {
		next := score + k
		bust := 0.0
		if next > cfg.MaxScore() {
			bust = 1
		}
		busts = append(busts, bust)
		payouts = append(payouts, cfg.Payout(next))
		profits = append(profits, cfg.Profit(next))
	}

	return ForAction{
		ProbabilityAboveMaxScore: stat.Mean(busts, nil),
		ExpectedPayout:           stat.Mean(payouts, nil),
		ExpectedProfit:           stat.Mean(profits, nil),
	}
}

// ComputeAll evaluates every playable score, 1 through MaxScore.
func ComputeAll(cfg *config.Config) []Statistics {
	out := make([]Statistics, 0, cfg.MaxScore())
	for _, score := range cfg.Scores() {
		out = append(out, ComputeForScore(cfg, score))
	}
	return out
}

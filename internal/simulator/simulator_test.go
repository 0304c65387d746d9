package simulator

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/scoremdp/internal/action"
	"github.com/lox/scoremdp/internal/config"
	"github.com/lox/scoremdp/internal/hints"
	"github.com/lox/scoremdp/internal/solver"
)

type strategyFunc func(score int) (action.Action, error)

func (f strategyFunc) Choose(score int) (action.Action, error) { return f(score) }

// greedy rolls 1-8 whenever allowed and banks otherwise.
func greedy(cfg *config.Config) Strategy {
	return strategyFunc(func(score int) (action.Action, error) {
		if action.OneToEight.IsAvailable(cfg, score) {
			return action.OneToEight, nil
		}
		return action.Payout, nil
	})
}

func TestOptimalPolicyMatchesSolvedValue(t *testing.T) {
	game := config.Normalized()
	res, err := solver.Solve(context.Background(), game)
	require.NoError(t, err)

	summary, err := Run(context.Background(), Config{Games: 20000, Seed: 7, Workers: 4}, game, res.Policy)
	require.NoError(t, err)

	assert.Equal(t, 20000, summary.Games)
	assert.Equal(t, summary.Games, summary.Busts+summary.Payouts)
	assert.LessOrEqual(t, math.Abs(summary.Mean-res.Value(1)), 5*summary.StdError+1e-9,
		"simulated %.4f vs solved %.4f", summary.Mean, res.Value(1))
}

func TestAdvisorDoesNotBeatOptimal(t *testing.T) {
	game := config.Normalized()
	res, err := solver.Solve(context.Background(), game)
	require.NoError(t, err)

	summary, err := Run(context.Background(), Config{Games: 20000, Seed: 11, Workers: 2}, game, hints.NewAdvisorStrategy(game))
	require.NoError(t, err)
	assert.LessOrEqual(t, summary.Mean, res.Value(1)+5*summary.StdError)
}

func TestRunIsReproducible(t *testing.T) {
	game := config.LowStakes()
	cfg := Config{Games: 500, Seed: 99, Workers: 3}

	first, err := Run(context.Background(), cfg, game, greedy(game))
	require.NoError(t, err)
	second, err := Run(context.Background(), cfg, game, greedy(game))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestStartAtCeilingAlwaysBanks(t *testing.T) {
	game := config.Normalized()
	summary, err := Run(context.Background(), Config{Games: 10, StartScore: 20, Workers: 1}, game, greedy(game))
	require.NoError(t, err)

	assert.Equal(t, 10, summary.Payouts)
	assert.Zero(t, summary.Busts)
	assert.Equal(t, map[string]int{"payout": 10}, summary.ActionCounts)
	assert.InDelta(t, 1.0, summary.Mean, 1e-12)
	assert.Zero(t, summary.StdDev)
	assert.True(t, summary.Contains(1))
}

func TestBustsArePricedPastTheCeiling(t *testing.T) {
	game := config.Normalized()
	summary, err := Run(context.Background(), Config{Games: 4000, StartScore: 19, Seed: 3}, game, greedy(game))
	require.NoError(t, err)

	// From 19, 1-8 lands on 20 once in eight and overshoots otherwise.
	assert.Equal(t, 4000, summary.ActionCounts["1-8"])
	assert.Equal(t, summary.Payouts, summary.ActionCounts["payout"])
	assert.InDelta(t, 0.875, float64(summary.Busts)/4000, 0.03)
	assert.InDelta(t, -0.75, summary.Mean, 0.07)
}

func TestUnavailableActionIsAnError(t *testing.T) {
	alwaysPayout := strategyFunc(func(int) (action.Action, error) { return action.Payout, nil })
	_, err := Run(context.Background(), Config{Games: 1}, config.Normalized(), alwaysPayout)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")
}

func TestConfigValidate(t *testing.T) {
	game := config.Normalized()
	assert.Error(t, Config{Games: 0, StartScore: 1}.Validate(game))
	assert.Error(t, Config{Games: 1, StartScore: 21}.Validate(game))
	assert.Error(t, Config{Games: 1, StartScore: 1, Workers: -1}.Validate(game))
	assert.NoError(t, Config{Games: 1, StartScore: 20}.Validate(game))

	_, err := New(Config{Games: 1}, game, nil)
	assert.Error(t, err)
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	game := config.Normalized()
	_, err := Run(ctx, Config{Games: 100}, game, greedy(game))
	assert.ErrorIs(t, err, context.Canceled)
}

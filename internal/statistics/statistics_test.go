package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/scoremdp/internal/config"
)

const tolerance = 1e-9

func TestOneToEightAtNineteen(t *testing.T) {
	cfg := config.Normalized()
	stats := ComputeForScore(cfg, 19)

	// Scores 20..27: only 20 pays (2 - 1 = 1), the rest are -1.
	assert.InDelta(t, -0.75, stats.OneToEight.ExpectedProfit, tolerance)
	assert.InDelta(t, 2.0/8, stats.OneToEight.ExpectedPayout, tolerance)
	assert.InDelta(t, 7.0/8, stats.OneToEight.ProbabilityAboveMaxScore, tolerance)
}

func TestFourToSevenAtFourteen(t *testing.T) {
	cfg := config.Normalized()
	got, err := ComputeForAction(cfg, 14, 4, 7)
	require.NoError(t, err)

	// Scores 18, 19, 20 pay 1.25, 1.5, 2; 21 busts.
	assert.InDelta(t, 0.25, got.ProbabilityAboveMaxScore, tolerance)
	assert.InDelta(t, (1.25+1.5+2+0)/4, got.ExpectedPayout, tolerance)
	assert.InDelta(t, (0.25+0.5+1-1)/4, got.ExpectedProfit, tolerance)
}

func TestPayoutIsBankNow(t *testing.T) {
	cfg := config.LowStakes()
	for _, score := range cfg.Scores() {
		stats := ComputeForScore(cfg, score)
		assert.InDelta(t, cfg.Profit(score), stats.Payout.ExpectedProfit, tolerance)
		assert.InDelta(t, cfg.Payout(score), stats.Payout.ExpectedPayout, tolerance)
		assert.Zero(t, stats.Payout.ProbabilityAboveMaxScore)
	}
}

func TestAnyActionIsUnweightedAverage(t *testing.T) {
	cfg := config.HighStakes()
	for _, score := range []int{1, 10, 15, 18} {
		stats := ComputeForScore(cfg, score)
		assert.InDelta(t, (stats.OneToEight.ExpectedProfit+stats.FourToSeven.ExpectedProfit)/2, stats.AnyAction.ExpectedProfit, tolerance)
		assert.InDelta(t, (stats.OneToEight.ExpectedPayout+stats.FourToSeven.ExpectedPayout)/2, stats.AnyAction.ExpectedPayout, tolerance)
		assert.InDelta(t, (stats.OneToEight.ProbabilityAboveMaxScore+stats.FourToSeven.ProbabilityAboveMaxScore)/2, stats.AnyAction.ProbabilityAboveMaxScore, tolerance)
	}
}

func TestOutOfTableProfitUsesNegatedEntryCost(t *testing.T) {
	cfg := config.LowStakes()
	got, err := ComputeForAction(cfg, 30, 1, 8)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, got.ProbabilityAboveMaxScore, tolerance)
	assert.InDelta(t, 0.0, got.ExpectedPayout, tolerance)
	assert.InDelta(t, -20.0, got.ExpectedProfit, tolerance)
}

func TestLowScoresNeverBust(t *testing.T) {
	cfg := config.Normalized()
	stats := ComputeForScore(cfg, 1)
	assert.Zero(t, stats.OneToEight.ProbabilityAboveMaxScore)
	assert.Zero(t, stats.FourToSeven.ProbabilityAboveMaxScore)
	assert.InDelta(t, -1.0, stats.OneToEight.ExpectedProfit, tolerance)
}

func TestComputeAll(t *testing.T) {
	cfg := config.Normalized()
	all := ComputeAll(cfg)
	require.Len(t, all, cfg.MaxScore())
	for i, s := range all {
		assert.Equal(t, i+1, s.Score)
	}
}

func TestComputeForActionRejectsReversedRange(t *testing.T) {
	_, err := ComputeForAction(config.Normalized(), 10, 7, 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[7, 4]")

	// A single-value range is valid; payout is the [0, 0] case.
	got, err := ComputeForAction(config.Normalized(), 19, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got.ExpectedProfit, tolerance)
}

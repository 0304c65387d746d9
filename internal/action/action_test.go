package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/scoremdp/internal/config"
)

func TestCatalogOrderAndLabels(t *testing.T) {
	all := All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"payout", "1-8", "4-7"}, []string{all[0].Label(), all[1].Label(), all[2].Label()})
	assert.Equal(t, Count(), len(all))

	for i, a := range all {
		assert.Equal(t, ID(i), a.ID())
		got, ok := ByID(a.ID())
		require.True(t, ok)
		assert.Equal(t, a, got)
	}
	_, ok := ByID(ID(Count()))
	assert.False(t, ok)
}

func TestIncrements(t *testing.T) {
	assert.Empty(t, Payout.Increments())
	assert.True(t, Payout.Terminal())

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, OneToEight.Increments())
	assert.Equal(t, []int{4, 5, 6, 7}, FourToSeven.Increments())
	assert.False(t, OneToEight.Terminal())

	low, high := FourToSeven.Bounds()
	assert.Equal(t, 4, low)
	assert.Equal(t, 7, high)
}

func TestParse(t *testing.T) {
	for _, a := range All() {
		got, err := Parse(a.Label())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	_, err := Parse("2-9")
	assert.Error(t, err)
}

func TestAvailableBoundaries(t *testing.T) {
	cfg := config.Normalized()

	for _, cfg := range config.Builtins() {
		for score := -2; score <= cfg.MaxScore()+3; score++ {
			set := Available(cfg, score)
			for _, a := range []Action{OneToEight, FourToSeven} {
				low, _ := a.Bounds()
				assert.Equal(t, score <= cfg.MaxScore()-low, set.Has(a), "%s at %d", a, score)
			}
			assert.Equal(t, score >= cfg.MinScorePayout(), set.Has(Payout), "payout at %d", score)
		}
	}

	// Boundary is inclusive at MaxScore - low.
	assert.True(t, Available(cfg, 16).Has(FourToSeven))
	assert.False(t, Available(cfg, 17).Has(FourToSeven))
	assert.True(t, Available(cfg, 19).Has(OneToEight))
	assert.False(t, Available(cfg, 20).Has(OneToEight))
}

func TestAvailableAtMaxScoreIsPayoutOnly(t *testing.T) {
	cfg := config.Normalized()
	got := Available(cfg, 20)
	assert.Equal(t, NewSet(Payout), got)
	assert.Equal(t, []Action{Payout}, got.Actions())
	assert.Equal(t, "{payout}", got.String())
}

func TestAvailableBelowMinPayout(t *testing.T) {
	cfg := config.Normalized()
	got := Available(cfg, 1)
	assert.False(t, got.Has(Payout))
	assert.Equal(t, 2, got.Len())
	assert.Equal(t, []Action{OneToEight, FourToSeven}, got.Actions())
}

func TestApplyTerminalHasNoResults(t *testing.T) {
	assert.Nil(t, Apply(config.Normalized(), 18, Payout))
}

func TestApplyRange(t *testing.T) {
	cfg := config.Normalized()

	results := Apply(cfg, 14, FourToSeven)
	require.Len(t, results, 4)

	wantScores := []int{18, 19, 20, 21}
	for i, r := range results {
		assert.Equal(t, wantScores[i], r.Score)
		assert.Equal(t, cfg.Payout(r.Score), r.Payout)
		assert.Equal(t, cfg.Profit(r.Score), r.Profit)
		assert.Equal(t, Available(cfg, r.Score), r.Available)
	}

	bust := results[3]
	assert.Equal(t, 0.0, bust.Payout)
	assert.Equal(t, -1.0, bust.Profit)
	assert.True(t, bust.Available.Has(Payout))
	assert.False(t, bust.Available.Has(OneToEight))
}

func TestApplyDeduplicates(t *testing.T) {
	cfg := config.Normalized()
	results := Apply(cfg, 1, OneToEight)
	require.Len(t, results, 8)

	seen := map[Result]bool{}
	for _, r := range results {
		assert.False(t, seen[r])
		seen[r] = true
	}
}

package mdp

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/lox/scoremdp/internal/action"
	"github.com/lox/scoremdp/internal/config"
)

func TestRowsAreStochastic(t *testing.T) {
	for _, cfg := range config.Builtins() {
		t.Run(cfg.Name(), func(t *testing.T) {
			m := Formulate(cfg)
			require.NoError(t, m.Validate())

			for ai, tm := range m.Transitions {
				for s := 0; s < m.NumStates(); s++ {
					sum := floats.Sum(mat.Row(nil, s, tm))
					assert.InDelta(t, 1.0, sum, 1e-9, "action %s state %s", m.Actions[ai], m.StateName(s))
				}
			}
		})
	}
}

func TestDimensions(t *testing.T) {
	m := Formulate(config.Normalized())
	assert.Equal(t, 22, m.NumStates())
	assert.Equal(t, 3, m.NumActions())
	assert.Equal(t, 20, m.OverflowState())
	assert.Equal(t, 21, m.TerminalState())

	r, c := m.Rewards.Dims()
	assert.Equal(t, 22, r)
	assert.Equal(t, 3, c)
}

func TestRangeTransitions(t *testing.T) {
	cfg := config.Normalized()
	m := Formulate(cfg)
	tm := m.Transitions[action.FourToSevenID]

	from := m.StateIndex(15)
	for _, to := range []int{19, 20} {
		assert.InDelta(t, 0.25, tm.At(from, m.StateIndex(to)), 1e-12)
	}
	// 15+6 and 15+7 both bust.
	assert.InDelta(t, 0.5, tm.At(from, m.OverflowState()), 1e-12)
	assert.Zero(t, tm.At(from, m.TerminalState()))

	oneToEight := m.Transitions[action.OneToEightID]
	from = m.StateIndex(1)
	for to := 2; to <= 9; to++ {
		assert.InDelta(t, 0.125, oneToEight.At(from, m.StateIndex(to)), 1e-12)
	}
}

func TestUnavailableActionsTerminate(t *testing.T) {
	cfg := config.Normalized()
	m := Formulate(cfg)

	// 4-7 is unavailable above 16.
	tm := m.Transitions[action.FourToSevenID]
	from := m.StateIndex(17)
	assert.Equal(t, 1.0, tm.At(from, m.TerminalState()))
	assert.True(t, math.IsInf(m.Rewards.At(from, int(action.FourToSevenID)), -1))

	// Payout is unavailable below 15, yet still terminates.
	payout := m.Transitions[action.PayoutID]
	from = m.StateIndex(3)
	assert.Equal(t, 1.0, payout.At(from, m.TerminalState()))
	assert.True(t, math.IsInf(m.Rewards.At(from, int(action.PayoutID)), -1))
}

func TestAbsorbingStates(t *testing.T) {
	m := Formulate(config.LowStakes())
	for ai := range m.Actions {
		tm := m.Transitions[ai]
		assert.Equal(t, 1.0, tm.At(m.OverflowState(), m.TerminalState()))
		assert.Equal(t, 1.0, tm.At(m.TerminalState(), m.TerminalState()))
		assert.Zero(t, m.Rewards.At(m.TerminalState(), ai))
	}
}

func TestRewards(t *testing.T) {
	cfg := config.Normalized()
	m := Formulate(cfg)

	payout := int(action.PayoutID)
	oneToEight := int(action.OneToEightID)

	assert.InDelta(t, cfg.Profit(18), m.Rewards.At(m.StateIndex(18), payout), 1e-12)
	assert.Zero(t, m.Rewards.At(m.StateIndex(18), oneToEight))
	assert.Zero(t, m.Rewards.At(m.StateIndex(1), oneToEight))

	assert.Equal(t, cfg.Profit(cfg.BustScore()), m.Rewards.At(m.OverflowState(), payout))
	assert.True(t, math.IsInf(m.Rewards.At(m.OverflowState(), oneToEight), -1))
	assert.True(t, math.IsInf(m.Rewards.At(m.OverflowState(), int(action.FourToSevenID)), -1))
}

func TestBustPayoutIsPriced(t *testing.T) {
	cfg, err := config.New(1, map[int]decimal.Decimal{
		10: decimal.NewFromInt(3),
		11: decimal.NewFromFloat(0.5),
	}, config.WithMaxScore(10))
	require.NoError(t, err)

	m := Formulate(cfg)
	require.NoError(t, m.Validate())
	assert.InDelta(t, -0.5, m.Rewards.At(m.OverflowState(), int(action.PayoutID)), 1e-12)
}

func TestValidateDetectsLeak(t *testing.T) {
	m := Formulate(config.Normalized())
	m.Transitions[action.OneToEightID].Set(0, 1, 0)
	assert.Error(t, m.Validate())
	assert.Panics(t, m.MustValidate)
}

func TestValidateDetectsForbiddenState(t *testing.T) {
	m := Formulate(config.Normalized())
	for ai := range m.Actions {
		m.Rewards.Set(m.StateIndex(5), ai, math.Inf(-1))
	}
	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "score=5")
}

func TestStateNames(t *testing.T) {
	m := Formulate(config.Normalized())
	assert.Equal(t, "score=1", m.StateName(0))
	assert.Equal(t, "overflow", m.StateName(m.OverflowState()))
	assert.Equal(t, "terminal", m.StateName(m.TerminalState()))

	score, ok := m.Score(19)
	assert.True(t, ok)
	assert.Equal(t, 20, score)
	_, ok = m.Score(m.OverflowState())
	assert.False(t, ok)
}

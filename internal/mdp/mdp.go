// Package mdp formulates the scoring game as a finite Markov decision process.
//
// States are ordered [score 1, ..., score MaxScore, overflow, terminal].
// Overflow stands for every score above MaxScore; terminal is the absorbing
// end-of-game state. Each action gets an N×N row-stochastic transition
// matrix, and rewards are indexed by (state, action) and realised before the
// transition.
package mdp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/lox/scoremdp/internal/action"
	"github.com/lox/scoremdp/internal/config"
)

// rowSumTolerance bounds how far a transition row may drift from 1.
const rowSumTolerance = 1e-9

// Model is the formulated MDP for one config. It is built fresh for every
// solve and is not shared.
type Model struct {
	Config  *config.Config
	Actions []action.Action

	// Transitions[a] is the N×N matrix T[a][from][to].
	Transitions []*mat.Dense
	// Rewards is the N×A matrix R[state][action].
	Rewards *mat.Dense
}

// Formulate builds the transition tensor and reward matrix for cfg.
//
// A terminal action, or any action unavailable at a score, moves straight to
// the terminal state. A range action spreads 1/|increments| over its
// increments, routing scores above MaxScore to overflow. Overflow moves to
// terminal and terminal loops on itself under every action.
//
// Unavailable actions are rewarded -Inf so they are never selected. Available
// range actions earn 0. Payout earns Profit(score), or Profit(MaxScore+1) at
// overflow. Terminal rewards are 0 for every action.
func Formulate(cfg *config.Config) *Model {
	actions := action.All()
	n := cfg.MaxScore() + 2
	m := &Model{
		Config:      cfg,
		Actions:     actions,
		Transitions: make([]*mat.Dense, len(actions)),
		Rewards:     mat.NewDense(n, len(actions), nil),
	}

	overflow := m.OverflowState()
	terminal := m.TerminalState()
	negInf := math.Inf(-1)

	for ai, a := range actions {
		t := mat.NewDense(n, n, nil)

		for _, score := range cfg.Scores() {
			from := m.StateIndex(score)
			available := a.IsAvailable(cfg, score)

			switch {
			case !available:
				t.Set(from, terminal, 1)
				m.Rewards.Set(from, ai, negInf)
			case a.Terminal():
				t.Set(from, terminal, 1)
				m.Rewards.Set(from, ai, cfg.Profit(score))
			default:
				incs := a.Increments()
				p := 1 / float64(len(incs))
				for _, inc := range incs {
					to := overflow
					if next := score + inc; next <= cfg.MaxScore() {
						to = m.StateIndex(next)
					}
					t.Set(from, to, t.At(from, to)+p)
				}
			}
		}

		t.Set(overflow, terminal, 1)
		if a.Terminal() {
			m.Rewards.Set(overflow, ai, cfg.Profit(cfg.BustScore()))
		} else {
			m.Rewards.Set(overflow, ai, negInf)
		}

		t.Set(terminal, terminal, 1)
		m.Transitions[ai] = t
	}
	return m
}

// NumStates returns N, the number of scores plus overflow and terminal.
func (m *Model) NumStates() int {
	return m.Config.MaxScore() + 2
}

// NumActions returns the number of actions in the model.
func (m *Model) NumActions() int {
	return len(m.Actions)
}

// StateIndex maps a playable score to its row index.
func (m *Model) StateIndex(score int) int {
	return score - 1
}

// Score maps a row index back to its score. It returns false for the
// overflow and terminal states.
func (m *Model) Score(state int) (int, bool) {
	if state < 0 || state >= m.Config.MaxScore() {
		return 0, false
	}
	return state + 1, true
}

// OverflowState is the index of the absorbing bust state.
func (m *Model) OverflowState() int {
	return m.Config.MaxScore()
}

// TerminalState is the index of the absorbing end-of-game state.
func (m *Model) TerminalState() int {
	return m.Config.MaxScore() + 1
}

// StateName renders a state index for logs and errors.
func (m *Model) StateName(state int) string {
	switch {
	case state == m.OverflowState():
		return "overflow"
	case state == m.TerminalState():
		return "terminal"
	default:
		score, _ := m.Score(state)
		return fmt.Sprintf("score=%d", score)
	}
}

// Validate checks the model's structural invariants: every transition row
// sums to 1, and every state has at least one action with a finite reward.
func (m *Model) Validate() error {
	n := m.NumStates()
	if len(m.Transitions) != len(m.Actions) {
		return fmt.Errorf("have %d transition matrices for %d actions", len(m.Transitions), len(m.Actions))
	}
	if r, c := m.Rewards.Dims(); r != n || c != len(m.Actions) {
		return fmt.Errorf("reward matrix is %dx%d, want %dx%d", r, c, n, len(m.Actions))
	}

	for ai, t := range m.Transitions {
		if r, c := t.Dims(); r != n || c != n {
			return fmt.Errorf("action %s: transition matrix is %dx%d, want %dx%d", m.Actions[ai], r, c, n, n)
		}
		for s := 0; s < n; s++ {
			row := mat.Row(nil, s, t)
			if sum := floats.Sum(row); math.Abs(sum-1) > rowSumTolerance {
				return fmt.Errorf("action %s: row %s sums to %v", m.Actions[ai], m.StateName(s), sum)
			}
			if floats.Min(row) < 0 {
				return fmt.Errorf("action %s: row %s has a negative probability", m.Actions[ai], m.StateName(s))
			}
		}
	}

	for s := 0; s < n; s++ {
		if !m.hasFiniteReward(s) {
			return fmt.Errorf("state %s has no permitted action", m.StateName(s))
		}
	}
	return nil
}

func (m *Model) hasFiniteReward(state int) bool {
	for ai := range m.Actions {
		if !math.IsInf(m.Rewards.At(state, ai), -1) {
			return true
		}
	}
	return false
}

// MustValidate panics if the model violates its invariants. A failure here
// is a formulation bug, not a user error.
func (m *Model) MustValidate() {
	if err := m.Validate(); err != nil {
		panic(fmt.Sprintf("mdp: invalid model for %s: %v", m.Config, err))
	}
}

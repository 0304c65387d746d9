// Package action defines the fixed catalog of moves available in the game
// and the rules for when each move may be taken.
package action

import (
	"fmt"
	"strings"

	"github.com/lox/scoremdp/internal/config"
)

// Kind distinguishes the two action variants.
type Kind uint8

const (
	// KindPayout banks the payout for the current score and ends the game.
	KindPayout Kind = iota
	// KindRange advances the score by an increment drawn uniformly from [low, high].
	KindRange
)

func (k Kind) String() string {
	switch k {
	case KindPayout:
		return "payout"
	case KindRange:
		return "range"
	default:
		return "unknown"
	}
}

// ID is an action's position in the catalog.
type ID uint8

const (
	PayoutID ID = iota
	OneToEightID
	FourToSevenID

	numActions
)

// Action is a closed variant: either Payout or a Range with inclusive bounds.
// The zero value is not a valid action; use the catalog values.
type Action struct {
	id    ID
	kind  Kind
	low   int
	high  int
	label string
}

var (
	// Payout ends the game and banks the current score's payout.
	Payout = Action{id: PayoutID, kind: KindPayout, label: "payout"}
	// OneToEight advances the score by 1 to 8.
	OneToEight = Action{id: OneToEightID, kind: KindRange, low: 1, high: 8, label: "1-8"}
	// FourToSeven advances the score by 4 to 7.
	FourToSeven = Action{id: FourToSevenID, kind: KindRange, low: 4, high: 7, label: "4-7"}
)

var catalog = [numActions]Action{Payout, OneToEight, FourToSeven}

// All returns every action in catalog order. The order is fixed and is the
// tie-break order used by the solver.
func All() []Action {
	out := make([]Action, len(catalog))
	copy(out, catalog[:])
	return out
}

// Count returns the number of actions in the catalog.
func Count() int {
	return int(numActions)
}

// ByID returns the catalog action with the given id.
func ByID(id ID) (Action, bool) {
	if id >= numActions {
		return Action{}, false
	}
	return catalog[id], true
}

// Parse resolves an action label such as "payout" or "1-8".
func Parse(label string) (Action, error) {
	needle := strings.ToLower(strings.TrimSpace(label))
	for _, a := range catalog {
		if a.label == needle {
			return a, nil
		}
	}
	return Action{}, fmt.Errorf("unknown action %q", label)
}

// ID returns the action's catalog position.
func (a Action) ID() ID { return a.id }

// Kind returns the variant.
func (a Action) Kind() Kind { return a.kind }

// Label returns the display and serialisation name.
func (a Action) Label() string { return a.label }

// Terminal reports whether taking the action ends the game.
func (a Action) Terminal() bool { return a.kind == KindPayout }

// Bounds returns the inclusive increment range. Payout reports (0, 0).
func (a Action) Bounds() (low, high int) { return a.low, a.high }

// Increments lists every increment the action can produce, each equally
// likely. Payout has none.
func (a Action) Increments() []int {
	if a.Terminal() {
		return nil
	}
	out := make([]int, 0, a.high-a.low+1)
	for k := a.low; k <= a.high; k++ {
		out = append(out, k)
	}
	return out
}

// IsAvailable reports whether the action may be taken at score.
//
// Payout requires the score to have reached the config's minimum payout
// score. A range action requires its smallest increment to stay within
// MaxScore; larger increments may still overshoot into a bust.
func (a Action) IsAvailable(cfg *config.Config, score int) bool {
	switch a.kind {
	case KindPayout:
		return score >= cfg.MinScorePayout()
	case KindRange:
		return score <= cfg.MaxScore()-a.low
	default:
		return false
	}
}

func (a Action) String() string {
	if a.label == "" {
		return "invalid"
	}
	return a.label
}

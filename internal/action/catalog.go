package action

import (
	"sort"
	"strings"

	"github.com/lox/scoremdp/internal/config"
)

// Set is a set of catalog actions. It is a value type, so two sets holding
// the same actions compare equal with ==.
type Set uint8

// NewSet builds a set from actions.
func NewSet(actions ...Action) Set {
	var s Set
	for _, a := range actions {
		s = s.With(a)
	}
	return s
}

// With returns s plus a.
func (s Set) With(a Action) Set {
	return s | 1<<a.id
}

// Has reports whether a is in the set.
func (s Set) Has(a Action) bool {
	return s&(1<<a.id) != 0
}

// Len returns the number of actions in the set.
func (s Set) Len() int {
	n := 0
	for _, a := range catalog {
		if s.Has(a) {
			n++
		}
	}
	return n
}

// Empty reports whether the set has no actions.
func (s Set) Empty() bool {
	return s == 0
}

// Actions returns the members in catalog order.
func (s Set) Actions() []Action {
	out := make([]Action, 0, len(catalog))
	for _, a := range catalog {
		if s.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

func (s Set) String() string {
	labels := make([]string, 0, len(catalog))
	for _, a := range s.Actions() {
		labels = append(labels, a.label)
	}
	return "{" + strings.Join(labels, ", ") + "}"
}

// Available returns every action that may be taken at score.
func Available(cfg *config.Config, score int) Set {
	var s Set
	for _, a := range catalog {
		if a.IsAvailable(cfg, score) {
			s = s.With(a)
		}
	}
	return s
}

// Result is one distinct outcome of taking a non-terminal action.
type Result struct {
	Score     int
	Payout    float64
	Profit    float64
	Available Set
}

// Apply enumerates the outcomes of taking a from score, one per distinct
// resulting state, ordered by score. Terminal actions have no forward
// outcomes and return nil. Scores above MaxScore are included and priced
// with the config's total payout and profit lookups.
func Apply(cfg *config.Config, score int, a Action) []Result {
	if a.Terminal() {
		return nil
	}

	seen := make(map[Result]struct{}, a.high-a.low+1)
	results := make([]Result, 0, a.high-a.low+1)
	for _, inc := range a.Increments() {
		next := score + inc
		r := Result{
			Score:     next,
			Payout:    cfg.Payout(next),
			Profit:    cfg.Profit(next),
			Available: Available(cfg, next),
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		results = append(results, r)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})
	return results
}

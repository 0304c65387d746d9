package solver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/lox/scoremdp/internal/action"
)

// Entry pairs a score with the action chosen there.
type Entry struct {
	Score  int
	Action action.Action
}

// Policy maps every playable score to an action. Entries are kept in
// ascending score order, which is also the JSON key order.
type Policy struct {
	entries []Entry
	index   map[int]int
}

// NewPolicy builds a policy from entries in any order. Duplicate scores are
// rejected.
func NewPolicy(entries []Entry) (*Policy, error) {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Score < sorted[j].Score })

	p := &Policy{entries: sorted, index: make(map[int]int, len(sorted))}
	for i, e := range sorted {
		if _, dup := p.index[e.Score]; dup {
			return nil, fmt.Errorf("duplicate policy entry for score %d", e.Score)
		}
		p.index[e.Score] = i
	}
	return p, nil
}

// Action returns the action for score.
func (p *Policy) Action(score int) (action.Action, bool) {
	i, ok := p.index[score]
	if !ok {
		return action.Action{}, false
	}
	return p.entries[i].Action, true
}

// Choose returns the action for score, or an error for scores the policy
// does not cover.
func (p *Policy) Choose(score int) (action.Action, error) {
	a, ok := p.Action(score)
	if !ok {
		return action.Action{}, fmt.Errorf("policy has no action for score %d", score)
	}
	return a, nil
}

// Label returns the action label for score, empty when absent.
func (p *Policy) Label(score int) string {
	a, ok := p.Action(score)
	if !ok {
		return ""
	}
	return a.Label()
}

// Entries returns a copy of the entries in score order.
func (p *Policy) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Scores returns the covered scores in ascending order.
func (p *Policy) Scores() []int {
	out := make([]int, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.Score
	}
	return out
}

// Len returns the number of scores covered.
func (p *Policy) Len() int {
	return len(p.entries)
}

// Labels returns the policy as a plain score to label map.
func (p *Policy) Labels() map[int]string {
	out := make(map[int]string, len(p.entries))
	for _, e := range p.entries {
		out[e.Score] = e.Action.Label()
	}
	return out
}

// Equal reports whether two policies choose the same action everywhere.
func (p *Policy) Equal(other *Policy) bool {
	if p == nil || other == nil {
		return p == other
	}
	if len(p.entries) != len(other.entries) {
		return false
	}
	for i, e := range p.entries {
		if other.entries[i] != e {
			return false
		}
	}
	return true
}

// MarshalJSON writes a flat object of score to label with keys in ascending
// numeric order. encoding/json would sort the keys as strings ("10" < "2").
func (p *Policy) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range p.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		label, err := json.Marshal(e.Action.Label())
		if err != nil {
			return nil, err
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(e.Score)))
		buf.WriteByte(':')
		buf.Write(label)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the flat object written by MarshalJSON.
func (p *Policy) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	entries := make([]Entry, 0, len(raw))
	for key, label := range raw {
		score, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("policy key %q is not a score: %w", key, err)
		}
		a, err := action.Parse(label)
		if err != nil {
			return fmt.Errorf("policy score %d: %w", score, err)
		}
		entries = append(entries, Entry{Score: score, Action: a})
	}
	parsed, err := NewPolicy(entries)
	if err != nil {
		return err
	}
	*p = *parsed
	return nil
}

// Package config describes the economics of a scoring game: what it costs
// to play, what each final score pays out, and the score ceiling above which
// the player busts.
//
// A Config is built once through New (or one of the named presets) and is
// read-only afterwards. Payout and Profit are total functions over every
// integer score: scores missing from the payout table pay 0 and therefore
// return a profit of exactly -EntryCost.
package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultMaxScore is the score ceiling used when none is given.
const DefaultMaxScore = 20

var (
	// ErrEmptyPayoutTable is returned when a config has no payout entries, so
	// no minimum payout score can be derived.
	ErrEmptyPayoutTable = errors.New("payout table is empty")
	// ErrUnknownPreset is returned when a preset name does not resolve.
	ErrUnknownPreset = errors.New("unknown preset")
)

// ConfigurationError reports an invalid game configuration. It is fatal:
// nothing can be solved or evaluated against a config that failed to build.
type ConfigurationError struct {
	Name string
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("invalid configuration: %v", e.Err)
	}
	return fmt.Sprintf("invalid configuration %q: %v", e.Name, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Config is an immutable description of a game's economics.
type Config struct {
	name           string
	entryCost      int64
	maxScore       int
	payouts        map[int]decimal.Decimal
	minScorePayout int
}

// Option customises a Config during construction.
type Option func(*Config)

// WithMaxScore overrides the score ceiling.
func WithMaxScore(maxScore int) Option {
	return func(c *Config) {
		c.maxScore = maxScore
	}
}

// WithName labels the config, typically with its preset name.
func WithName(name string) Option {
	return func(c *Config) {
		c.name = name
	}
}

// New builds a Config from an entry cost and a payout table keyed by score.
// The table is copied; later changes to the caller's map have no effect.
func New(entryCost int, payouts map[int]decimal.Decimal, opts ...Option) (*Config, error) {
	c := &Config{
		entryCost: int64(entryCost),
		maxScore:  DefaultMaxScore,
		payouts:   make(map[int]decimal.Decimal, len(payouts)),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.validate(entryCost, payouts); err != nil {
		return nil, &ConfigurationError{Name: c.name, Err: err}
	}

	first := true
	for score, payout := range payouts {
		c.payouts[score] = payout
		if first || score < c.minScorePayout {
			c.minScorePayout = score
			first = false
		}
	}
	return c, nil
}

func (c *Config) validate(entryCost int, payouts map[int]decimal.Decimal) error {
	if len(payouts) == 0 {
		return ErrEmptyPayoutTable
	}
	if entryCost < 0 {
		return fmt.Errorf("entry cost must be >= 0, got %d", entryCost)
	}
	if c.maxScore < 1 {
		return fmt.Errorf("max score must be >= 1, got %d", c.maxScore)
	}
	for score, payout := range payouts {
		if payout.IsNegative() {
			return fmt.Errorf("payout at score %d must be >= 0, got %s", score, payout)
		}
	}
	return nil
}

// Name returns the config's label, empty for anonymous configs.
func (c *Config) Name() string {
	return c.name
}

// EntryCost returns the cost of playing one game.
func (c *Config) EntryCost() int {
	return int(c.entryCost)
}

// MaxScore returns the highest score that does not bust.
func (c *Config) MaxScore() int {
	return c.maxScore
}

// BustScore returns the score used to price a bust, one above MaxScore.
func (c *Config) BustScore() int {
	return c.maxScore + 1
}

// MinScorePayout returns the lowest score at which banking is permitted.
func (c *Config) MinScorePayout() int {
	return c.minScorePayout
}

// PayoutDecimal returns the exact payout for score, zero when the score is
// not in the table.
func (c *Config) PayoutDecimal(score int) decimal.Decimal {
	if p, ok := c.payouts[score]; ok {
		return p
	}
	return decimal.Zero
}

// Payout returns the payout for score, 0 when the score is not in the table.
func (c *Config) Payout(score int) float64 {
	return c.PayoutDecimal(score).InexactFloat64()
}

// Profit returns payout minus entry cost for score. Every score outside the
// payout table, including scores above MaxScore, yields -EntryCost.
func (c *Config) Profit(score int) float64 {
	return c.PayoutDecimal(score).Sub(decimal.NewFromInt(c.entryCost)).InexactFloat64()
}

// Payouts returns a copy of the payout table.
func (c *Config) Payouts() map[int]decimal.Decimal {
	out := make(map[int]decimal.Decimal, len(c.payouts))
	for k, v := range c.payouts {
		out[k] = v
	}
	return out
}

// PayoutScores returns the scores present in the payout table in ascending order.
func (c *Config) PayoutScores() []int {
	scores := make([]int, 0, len(c.payouts))
	for score := range c.payouts {
		scores = append(scores, score)
	}
	sort.Ints(scores)
	return scores
}

// Scores returns every playable score, 1 through MaxScore.
func (c *Config) Scores() []int {
	scores := make([]int, c.maxScore)
	for i := range scores {
		scores[i] = i + 1
	}
	return scores
}

func (c *Config) String() string {
	name := c.name
	if name == "" {
		name = "custom"
	}
	return fmt.Sprintf("%s(entry_cost=%d, max_score=%d, min_score_payout=%d)",
		name, c.entryCost, c.maxScore, c.minScorePayout)
}

package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Preset names.
const (
	PresetNormalized = "normalized"
	PresetLowStakes  = "low_stakes"
	PresetHighStakes = "high_stakes"
)

type presetSpec struct {
	entryCost int
	payouts   map[int]string
}

// Presets differ only in entry cost and payout table. Scores below 15 pay nothing.
var presetSpecs = map[string]presetSpec{
	PresetNormalized: {
		entryCost: 1,
		payouts:   map[int]string{15: "0.25", 16: "0.5", 17: "1", 18: "1.25", 19: "1.5", 20: "2"},
	},
	PresetLowStakes: {
		entryCost: 20,
		payouts:   map[int]string{15: "5", 16: "10", 17: "20", 18: "25", 19: "30", 20: "40"},
	},
	PresetHighStakes: {
		entryCost: 200,
		payouts:   map[int]string{15: "50", 16: "100", 17: "200", 18: "250", 19: "300", 20: "400"},
	},
}

// PresetNames returns the built-in preset names in a stable order.
func PresetNames() []string {
	return []string{PresetNormalized, PresetLowStakes, PresetHighStakes}
}

// Preset builds the named built-in config.
func Preset(name string) (*Config, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	spec, ok := presetSpecs[key]
	if !ok {
		return nil, &ConfigurationError{
			Name: name,
			Err:  fmt.Errorf("%w (known: %s)", ErrUnknownPreset, strings.Join(PresetNames(), ", ")),
		}
	}
	payouts := make(map[int]decimal.Decimal, len(spec.payouts))
	for score, amount := range spec.payouts {
		payouts[score] = decimal.RequireFromString(amount)
	}
	return New(spec.entryCost, payouts, WithName(key))
}

// MustPreset is like Preset but panics on error. Only use it with the
// constant preset names.
func MustPreset(name string) *Config {
	cfg, err := Preset(name)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Normalized returns the preset with an entry cost of 1.
func Normalized() *Config { return MustPreset(PresetNormalized) }

// LowStakes returns the preset with an entry cost of 20.
func LowStakes() *Config { return MustPreset(PresetLowStakes) }

// HighStakes returns the preset with an entry cost of 200.
func HighStakes() *Config { return MustPreset(PresetHighStakes) }

// Builtins returns every built-in preset in PresetNames order.
func Builtins() []*Config {
	names := PresetNames()
	out := make([]*Config, 0, len(names))
	for _, name := range names {
		out = append(out, MustPreset(name))
	}
	return out
}

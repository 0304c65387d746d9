package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
)

// File is the HCL schema for user-defined presets.
//
//	preset "tournament" {
//	  entry_cost = 50
//	  max_score  = 20
//	  payouts    = { "15" = 12.5, "20" = 100 }
//	}
type File struct {
	Presets []PresetBlock `hcl:"preset,block"`
}

// PresetBlock is a single preset definition inside a File.
type PresetBlock struct {
	Name      string             `hcl:"name,label"`
	EntryCost int                `hcl:"entry_cost"`
	MaxScore  int                `hcl:"max_score,optional"`
	Payouts   map[string]float64 `hcl:"payouts"`
}

// LoadFile reads presets from an HCL file and returns them after the
// built-ins. A file preset with a built-in's name replaces it. A missing file
// is not an error and yields just the built-ins.
func LoadFile(filename string) ([]*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Builtins(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(filename, src)
}

// Parse decodes HCL source into configs, merged over the built-ins.
func Parse(filename string, src []byte) ([]*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var decoded File
	diags = gohcl.DecodeBody(file.Body, nil, &decoded)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	configs := Builtins()
	index := make(map[string]int, len(configs))
	for i, c := range configs {
		index[c.Name()] = i
	}

	for _, block := range decoded.Presets {
		cfg, err := block.build()
		if err != nil {
			return nil, err
		}
		if i, ok := index[cfg.Name()]; ok {
			configs[i] = cfg
			continue
		}
		index[cfg.Name()] = len(configs)
		configs = append(configs, cfg)
	}
	return configs, nil
}

func (b PresetBlock) build() (*Config, error) {
	name := strings.ToLower(strings.TrimSpace(b.Name))
	payouts := make(map[int]decimal.Decimal, len(b.Payouts))

	keys := make([]string, 0, len(b.Payouts))
	for k := range b.Payouts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		score, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return nil, &ConfigurationError{Name: name, Err: fmt.Errorf("payout key %q is not an integer score", k)}
		}
		payouts[score] = decimal.NewFromFloat(b.Payouts[k])
	}

	opts := []Option{WithName(name)}
	if b.MaxScore != 0 {
		opts = append(opts, WithMaxScore(b.MaxScore))
	}
	return New(b.EntryCost, payouts, opts...)
}

// Select returns the config with the given name from configs.
func Select(configs []*Config, name string) (*Config, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, c := range configs {
		if c.Name() == key {
			return c, nil
		}
	}
	known := make([]string, 0, len(configs))
	for _, c := range configs {
		known = append(known, c.Name())
	}
	return nil, &ConfigurationError{
		Name: name,
		Err:  fmt.Errorf("%w (known: %s)", ErrUnknownPreset, strings.Join(known, ", ")),
	}
}

// Package report writes solver and simulator output: policy JSON files,
// terminal tables and HTML charts.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lox/scoremdp/internal/solver"
)

// MarshalPolicy returns the policy as indented JSON with keys in numeric
// score order and a trailing newline.
func MarshalPolicy(p *solver.Policy) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal policy: %w", err)
	}
	return append(data, '\n'), nil
}

// WritePolicy writes the policy JSON to w.
func WritePolicy(w io.Writer, p *solver.Policy) error {
	data, err := MarshalPolicy(p)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// SavePolicy writes the policy JSON to path atomically.
func SavePolicy(path string, p *solver.Policy) error {
	data, err := MarshalPolicy(p)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data, 0o644)
}

// MarshalPolicies returns one JSON object mapping each config name to its
// policy.
func MarshalPolicies(results []*solver.Result) ([]byte, error) {
	byName := make(map[string]*solver.Policy, len(results))
	for _, res := range results {
		byName[res.Config.Name()] = res.Policy
	}
	data, err := json.MarshalIndent(byName, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal policies: %w", err)
	}
	return append(data, '\n'), nil
}

// SavePolicies writes the policies of several results to path atomically,
// as one object keyed by config name.
func SavePolicies(path string, results []*solver.Result) error {
	data, err := MarshalPolicies(results)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data, 0o644)
}

// LoadPolicy reads a policy written by SavePolicy.
func LoadPolicy(path string) (*solver.Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p solver.Policy
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse policy %s: %w", path, err)
	}
	return &p, nil
}

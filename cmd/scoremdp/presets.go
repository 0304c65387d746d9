package main

import (
	"os"

	"github.com/lox/scoremdp/internal/report"
)

// PresetsCmd lists payout tables
type PresetsCmd struct {
	Config string `kong:"type='path',help='HCL file of extra payout tables'"`
}

func (c *PresetsCmd) Run() error {
	cfgs, err := GameFlags{Config: c.Config}.Configs()
	if err != nil {
		return err
	}
	return report.WritePresets(os.Stdout, cfgs)
}

package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/scoremdp/internal/config"
)

// WritePresets writes a table of payout tables.
func WritePresets(w io.Writer, cfgs []*config.Config) error {
	t := newTable("name", "entry cost", "max score", "min payout score", "payouts").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, cfg := range cfgs {
		payouts := make([]string, 0, len(cfg.PayoutScores()))
		for _, score := range cfg.PayoutScores() {
			payouts = append(payouts, fmt.Sprintf("%d:%s", score, cfg.PayoutDecimal(score)))
		}
		t.Row(
			cfg.Name(),
			strconv.Itoa(cfg.EntryCost()),
			strconv.Itoa(cfg.MaxScore()),
			strconv.Itoa(cfg.MinScorePayout()),
			strings.Join(payouts, " "),
		)
	}

	_, err := fmt.Fprintln(w, t.String())
	return err
}

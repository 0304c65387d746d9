package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/scoremdp/internal/action"
	"github.com/lox/scoremdp/internal/simulator"
	"github.com/lox/scoremdp/internal/solver"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	payoutStyle = cellStyle.
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))

	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// WriteSummary writes a table of the solved policy: one row per score with
// the chosen action, its value and the value of each allowed action.
func WriteSummary(w io.Writer, res *solver.Result) error {
	actions := action.All()
	headers := []string{"score", "action", "value"}
	for _, a := range actions {
		headers = append(headers, "Q("+a.Label()+")")
	}

	entries := res.Policy.Entries()
	t := newTable(headers...).StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case col == 1 && row >= 0 && row < len(entries) && entries[row].Action.Terminal():
			return payoutStyle
		default:
			return cellStyle
		}
	})

	for _, e := range entries {
		row := []string{strconv.Itoa(e.Score), e.Action.Label(), formatValue(res.Value(e.Score))}
		for _, a := range actions {
			q, ok := res.ActionValues[e.Score][a.Label()]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, formatValue(q))
		}
		t.Row(row...)
	}

	footer := footerStyle.Render(fmt.Sprintf("%s: converged in %d iterations (variation %g) in %s",
		res.Config.Name(), res.Iterations, res.Variation, res.Elapsed))
	_, err := fmt.Fprintf(w, "%s\n%s\n", t.String(), footer)
	return err
}

// WriteSimulation writes the simulator summary. expected, when not nil, is
// the solved value at the start score and is shown against the interval.
func WriteSimulation(w io.Writer, s *simulator.Summary, expected *float64) error {
	t := newTable("metric", "value").StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		return cellStyle
	})

	t.Row("games", strconv.Itoa(s.Games))
	t.Row("mean profit", formatValue(s.Mean))
	t.Row("std dev", formatValue(s.StdDev))
	t.Row("std error", formatValue(s.StdError))
	t.Row("95% CI", fmt.Sprintf("[%s, %s]", formatValue(s.CI95Low), formatValue(s.CI95High)))
	t.Row("payouts", strconv.Itoa(s.Payouts))
	t.Row("busts", strconv.Itoa(s.Busts))
	if expected != nil {
		within := "outside CI"
		if s.Contains(*expected) {
			within = "within CI"
		}
		t.Row("solved value", fmt.Sprintf("%s (%s)", formatValue(*expected), within))
	}

	labels := make([]string, 0, len(s.ActionCounts))
	for label := range s.ActionCounts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		t.Row("taken "+label, strconv.Itoa(s.ActionCounts[label]))
	}

	_, err := fmt.Fprintln(w, t.String())
	return err
}

package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/lox/scoremdp/internal/action"
	"github.com/lox/scoremdp/internal/solver"
)

// missing is the echarts marker for a gap in a series.
const missing = "-"

// ValueChart builds a bar chart of the optimal expected profit per score,
// overlaid with one line per action showing that action's value where it
// is allowed.
func ValueChart(res *solver.Result) *charts.Bar {
	scores := res.Config.Scores()
	xAxis := make([]string, len(scores))
	values := make([]opts.BarData, len(scores))
	for i, score := range scores {
		xAxis[i] = strconv.Itoa(score)
		values[i] = opts.BarData{
			Name:  res.Policy.Label(score),
			Value: res.Value(score),
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Optimal expected profit",
			Subtitle: fmt.Sprintf("%s, %d iterations", res.Config.Name(), res.Iterations),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "score"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "profit"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Top: "bottom"}),
	)
	bar.SetXAxis(xAxis).AddSeries("optimal", values)

	line := charts.NewLine()
	line.SetXAxis(xAxis)
	for _, a := range action.All() {
		items := make([]opts.LineData, len(scores))
		for i, score := range scores {
			q, ok := res.ActionValues[score][a.Label()]
			if !ok {
				items[i] = opts.LineData{Value: missing}
				continue
			}
			items[i] = opts.LineData{Value: q}
		}
		line.AddSeries(a.Label(), items)
	}
	bar.Overlap(line)
	return bar
}

// RenderValueChart writes the value chart as a standalone HTML page.
func RenderValueChart(w io.Writer, res *solver.Result) error {
	return ValueChart(res).Render(w)
}

// SaveValueChart renders the value chart to path.
func SaveValueChart(path string, res *solver.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := RenderValueChart(f, res); err != nil {
		f.Close()
		return fmt.Errorf("render chart: %w", err)
	}
	return f.Close()
}

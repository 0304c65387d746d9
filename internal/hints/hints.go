// Package hints gives naive one-step advice for a score: the closed-form
// statistics of each action and the action with the best expected profit
// if the game were to end right after it.
package hints

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/scoremdp/internal/action"
	"github.com/lox/scoremdp/internal/config"
	"github.com/lox/scoremdp/internal/statistics"
)

// Suggestion is the advised move for one score. Actions holds a single
// action, or both range actions when their expected profits tie.
type Suggestion struct {
	Actions        []action.Action
	ExpectedProfit float64
}

// Suggest picks payout when it strictly beats the average of the range
// actions, otherwise the range action with the higher expected profit.
func Suggest(stats statistics.Statistics) Suggestion {
	oneToEight := stats.OneToEight.ExpectedProfit
	fourToSeven := stats.FourToSeven.ExpectedProfit

	switch {
	case stats.Payout.ExpectedProfit > stats.AnyAction.ExpectedProfit:
		return Suggestion{Actions: []action.Action{action.Payout}, ExpectedProfit: stats.Payout.ExpectedProfit}
	case oneToEight == fourToSeven:
		return Suggestion{Actions: []action.Action{action.OneToEight, action.FourToSeven}, ExpectedProfit: oneToEight}
	case oneToEight > fourToSeven:
		return Suggestion{Actions: []action.Action{action.OneToEight}, ExpectedProfit: oneToEight}
	default:
		return Suggestion{Actions: []action.Action{action.FourToSeven}, ExpectedProfit: fourToSeven}
	}
}

// Primary returns the first suggested action.
func (s Suggestion) Primary() action.Action {
	if len(s.Actions) == 0 {
		return action.Action{}
	}
	return s.Actions[0]
}

func (s Suggestion) String() string {
	if len(s.Actions) == 1 && s.Actions[0].Terminal() {
		return action.Payout.Label()
	}
	labels := make([]string, len(s.Actions))
	for i, a := range s.Actions {
		labels[i] = a.Label()
	}
	return fmt.Sprintf("%s (E = %.2f)", strings.Join(labels, " or "), s.ExpectedProfit)
}

// Advisor renders hints for one config.
type Advisor struct {
	cfg    *config.Config
	styles Styles
}

// NewAdvisor returns an advisor using the default styles.
func NewAdvisor(cfg *config.Config) *Advisor {
	return &Advisor{cfg: cfg, styles: DefaultStyles()}
}

// WithStyles returns a copy of the advisor using styles.
func (a *Advisor) WithStyles(styles Styles) *Advisor {
	cp := *a
	cp.styles = styles
	return &cp
}

// Config returns the advisor's config.
func (a *Advisor) Config() *config.Config {
	return a.cfg
}

// Suggest returns the suggestion for score.
func (a *Advisor) Suggest(score int) Suggestion {
	return Suggest(statistics.ComputeForScore(a.cfg, score))
}

// Lines returns the hint block for score: one line per action record and
// the suggested action last.
func (a *Advisor) Lines(score int) []string {
	stats := statistics.ComputeForScore(a.cfg, score)
	return []string{
		a.line(action.OneToEight.Label(), stats.OneToEight),
		a.line(action.FourToSeven.Label(), stats.FourToSeven),
		a.line("any", stats.AnyAction),
		a.line(action.Payout.Label(), stats.Payout),
		a.styles.Label.Render("Suggested action:") + " " + a.styles.Suggestion.Render(Suggest(stats).String()),
	}
}

func (a *Advisor) line(label string, s statistics.ForAction) string {
	return fmt.Sprintf("%s P(score > %d) = %.2f, E(payout) = %.2f, E(profit) = %s",
		a.styles.Label.Render("["+label+"]"),
		a.cfg.MaxScore(),
		s.ProbabilityAboveMaxScore,
		s.ExpectedPayout,
		a.styles.profit(s.ExpectedProfit),
	)
}

// WriteHint writes the hint block for score to w.
func (a *Advisor) WriteHint(w io.Writer, score int) error {
	_, err := io.WriteString(w, strings.Join(a.Lines(score), "\n")+"\n")
	return err
}

// WriteAll writes one suggestion per playable score. With debug set it
// writes the raw expected profit of each action instead.
func (a *Advisor) WriteAll(w io.Writer, debug bool) error {
	var b strings.Builder
	for _, stats := range statistics.ComputeAll(a.cfg) {
		if debug {
			fmt.Fprintf(&b, "Score: %d\n", stats.Score)
			fmt.Fprintf(&b, "[%s] %v\n", action.OneToEight.Label(), stats.OneToEight.ExpectedProfit)
			fmt.Fprintf(&b, "[%s] %v\n", action.FourToSeven.Label(), stats.FourToSeven.ExpectedProfit)
			fmt.Fprintf(&b, "[%s] %v\n", action.Payout.Label(), stats.Payout.ExpectedProfit)
			continue
		}
		fmt.Fprintf(&b, "%s %s\n", a.styles.Label.Render(fmt.Sprintf("[%d]", stats.Score)), Suggest(stats))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

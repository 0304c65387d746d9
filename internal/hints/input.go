package hints

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/scoremdp/internal/config"
)

// InvalidInputError reports a score the user typed that cannot be advised on.
type InvalidInputError struct {
	Input    string
	MaxScore int
	Err      error
}

func (e *InvalidInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid score %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("invalid score %q: must be between 1 and %d", e.Input, e.MaxScore)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

// ParseScore reads a score typed by the user. It must be an integer in
// 1..cfg.MaxScore().
func ParseScore(input string, cfg *config.Config) (int, error) {
	trimmed := strings.TrimSpace(input)
	score, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &InvalidInputError{Input: trimmed, MaxScore: cfg.MaxScore(), Err: err}
	}
	if score < 1 || score > cfg.MaxScore() {
		return 0, &InvalidInputError{Input: trimmed, MaxScore: cfg.MaxScore()}
	}
	return score, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

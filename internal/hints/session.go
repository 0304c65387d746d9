package hints

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// QuitCommand ends an interactive session.
const QuitCommand = "q"

// Session is the line-oriented hint loop: read a score, print its hints,
// repeat until the user quits or input ends.
type Session struct {
	in      io.Reader
	out     io.Writer
	advisor *Advisor
	logger  *log.Logger
}

// NewSession creates a session reading from in and writing to out.
func NewSession(in io.Reader, out io.Writer, advisor *Advisor, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		in:      in,
		out:     out,
		advisor: advisor,
		logger:  logger.WithPrefix("hints"),
	}
}

// Run reads scores until "q", end of input or ctx is cancelled. Invalid
// input is reported to the user and the loop carries on. Cancellation is
// checked between lines.
func (s *Session) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.prompt(); err != nil {
			return err
		}
		if !scanner.Scan() {
			s.logger.Debug("input closed")
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if input == QuitCommand {
			s.logger.Debug("quit requested")
			return nil
		}

		score, err := ParseScore(input, s.advisor.Config())
		if err != nil {
			var invalid *InvalidInputError
			if !errors.As(err, &invalid) {
				return err
			}
			s.logger.Debug("rejected input", "input", input)
			if _, err := fmt.Fprintln(s.out, s.advisor.styles.Error.Render(invalid.Error())); err != nil {
				return err
			}
			continue
		}

		if err := s.advisor.WriteHint(s.out, score); err != nil {
			return err
		}
	}
}

func (s *Session) prompt() error {
	_, err := io.WriteString(s.out, s.advisor.styles.Prompt.Render("Enter score:")+" ")
	return err
}

// Package tui is a full-screen hint browser: type a score, read the advice
// for it in a scrolling log.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/scoremdp/internal/hints"
)

const quitCommand = "q"

// Model is the Bubble Tea model for the hint browser.
type Model struct {
	advisor  *hints.Advisor
	logger   *log.Logger
	viewport viewport.Model
	input    textinput.Model
	entries  []string
	width    int
	height   int
	quitting bool
}

// NewModel creates a model rendering hints from advisor.
func NewModel(advisor *hints.Advisor, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// Sized properly once the first WindowSizeMsg arrives.
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = fmt.Sprintf("score between 1 and %d, or q to quit", advisor.Config().MaxScore())
	ti.Focus()
	ti.CharLimit = 8
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.Prompt = "Enter score: "

	return &Model{
		advisor:  advisor,
		logger:   logger.WithPrefix("tui"),
		viewport: vp,
		input:    ti,
	}
}

// Init starts the cursor blinking.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and resizes.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			input := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if input == quitCommand {
				m.quitting = true
				return m, tea.Quit
			}
			m.submit(input)
			return m, nil
		case tea.KeyPgUp:
			m.viewport.HalfPageUp()
			return m, nil
		case tea.KeyPgDown:
			m.viewport.HalfPageDown()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit renders the hints for input, or the reason it was rejected.
func (m *Model) submit(input string) {
	score, err := hints.ParseScore(input, m.advisor.Config())
	if err != nil {
		m.logger.Debug("rejected input", "input", input)
		m.addEntry(ErrorStyle.Render(err.Error()))
		return
	}
	block := append([]string{ScoreStyle.Render(fmt.Sprintf("Score %d", score))}, m.advisor.Lines(score)...)
	m.addEntry(strings.Join(block, "\n"))
}

func (m *Model) addEntry(entry string) {
	m.entries = append(m.entries, entry)
	m.viewport.SetContent(strings.Join(m.entries, "\n\n"))
	if m.viewport.Height > 0 && m.viewport.Width > 0 {
		m.viewport.GotoBottom()
	}
}

func (m *Model) resize() {
	// Borders take two columns and two rows per pane; the header and
	// input pane take four rows more.
	w := m.width - 2
	h := m.height - 7
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	m.viewport.Width = w
	m.viewport.Height = h
	m.input.Width = w - len(m.input.Prompt) - 1
	m.viewport.GotoBottom()
}

// Entries returns the rendered log entries, oldest first.
func (m *Model) Entries() []string {
	out := make([]string, len(m.entries))
	copy(out, m.entries)
	return out
}

// Quitting reports whether the user asked to leave.
func (m *Model) Quitting() bool {
	return m.quitting
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := HeaderStyle.Render(fmt.Sprintf("Hints: %s", m.advisor.Config()))
	logPane := logPaneStyle.
		Width(m.viewport.Width).
		Height(m.viewport.Height).
		Render(m.viewport.View())
	inputPane := inputPaneStyle.
		Width(m.width - 2).
		Render(m.input.View() + "\n" + HelpStyle.Render("enter: show hints  pgup/pgdn: scroll  q/esc: quit"))

	return lipgloss.JoinVertical(lipgloss.Left, header, logPane, inputPane)
}

// Run shows the hint browser until the user quits or ctx is done.
func Run(ctx context.Context, advisor *hints.Advisor, logger *log.Logger) error {
	p := tea.NewProgram(NewModel(advisor, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

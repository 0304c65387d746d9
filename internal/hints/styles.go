package hints

import "github.com/charmbracelet/lipgloss"

// Styles controls how hint lines are rendered.
type Styles struct {
	Label      lipgloss.Style
	Suggestion lipgloss.Style
	Gain       lipgloss.Style
	Loss       lipgloss.Style
	Error      lipgloss.Style
	Prompt     lipgloss.Style
}

// DefaultStyles returns the terminal palette.
func DefaultStyles() Styles {
	return Styles{
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true),
		Suggestion: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Gain: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")),
		Loss: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
	}
}

// PlainStyles renders everything unstyled.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Label:      plain,
		Suggestion: plain,
		Gain:       plain,
		Loss:       plain,
		Error:      plain,
		Prompt:     plain,
	}
}

func (s Styles) profit(v float64) string {
	text := formatFloat(v)
	if v < 0 {
		return s.Loss.Render(text)
	}
	return s.Gain.Render(text)
}

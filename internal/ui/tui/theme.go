package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style
	Focused  lipgloss.Style

	Cursor    lipgloss.Style
	Marked    lipgloss.Style
	Highlight lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
}

func DefaultTheme() Theme {
	card := lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))

	return Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Card:     card,
		Focused:  card.BorderForeground(lipgloss.Color("63")),

		Cursor:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Marked:    lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Highlight: lipgloss.NewStyle().Underline(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

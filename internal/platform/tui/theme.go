package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the visual styles of the game screen.
type Theme struct {
	// Header styles
	Title   lipgloss.Style
	Tagline lipgloss.Style
	Score   lipgloss.Style
	Button  lipgloss.Style

	// Board styles
	Board   lipgloss.Style
	Loading lipgloss.Style

	// Status line styles
	Busy  lipgloss.Style
	Error lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#776e65")),
		Tagline: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Score: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#bbada0")).
			Padding(0, 1),
		Button: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f59563")),

		Board: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#bbada0")),
		Loading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),

		Busy:  lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // Bright cyan
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // Red
	}
}

// tileStyle builds the lipgloss style of one board cell.
func tileStyle(background, foreground string) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(cellWidth).
		Height(cellHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Bold(true).
		Background(lipgloss.Color(background)).
		Foreground(lipgloss.Color(foreground))
}

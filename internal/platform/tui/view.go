package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// Layout constants
const (
	cellWidth  = 7
	cellHeight = 3

	padTop  = 1
	padLeft = 2

	newGameRow   = 2 // header line holding the new game control
	newGameLabel = "[ New game ]"

	tagline = "Join the numbers and get to the 2048 tile!"
)

// newGameHit reports whether screen coordinates fall on the new game control.
func newGameHit(x, y int) bool {
	return y == padTop+newGameRow &&
		x >= padLeft && x < padLeft+lipgloss.Width(newGameLabel)
}

func (m Model) render() string {
	var b strings.Builder

	b.WriteString(renderHeader(m.theme, m.state.Score()))
	b.WriteString("\n\n")

	if m.state.IsZero() {
		b.WriteString(m.theme.Loading.Render(m.spinner.View() + " Loading board..."))
	} else {
		b.WriteString(renderBoard(m.theme, m.state))
	}
	b.WriteString("\n")

	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return lipgloss.NewStyle().Padding(padTop, 0, 0, padLeft).Render(b.String())
}

// renderHeader renders the title, score, tagline and new game control.
func renderHeader(t Theme, score int) string {
	title := lipgloss.JoinHorizontal(lipgloss.Top,
		t.Title.Render("2048"),
		"   ",
		t.Score.Render(fmt.Sprintf("SCORE %d", score)),
	)
	return strings.Join([]string{
		title,
		t.Tagline.Render(tagline),
		t.Button.Render(newGameLabel),
	}, "\n")
}

// renderBoard lays out one styled cell per element, row by row.
func renderBoard(t Theme, s core.BoardState) string {
	cols := s.Columns()
	if cols <= 0 {
		cols = s.Len()
	}

	var rows []string
	cells := make([]string, 0, cols)
	for i := 0; i < s.Len(); i++ {
		style := core.StyleFor(s.At(i))
		cells = append(cells, tileStyle(style.Background, style.Foreground).Render(style.Label))
		if len(cells) == cols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
			cells = cells[:0]
		}
	}
	if len(cells) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return t.Board.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderStatus shows the busy spinner or the last failure.
func (m Model) renderStatus() string {
	switch {
	case m.pending > 0:
		return m.theme.Busy.Render(fmt.Sprintf("%s syncing (%d pending)", m.spinner.View(), m.pending))
	case m.lastErr != nil:
		return m.theme.Error.Render("error: " + m.lastErr.Error())
	default:
		return ""
	}
}

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/dnafinder/internal/ui"
)

func RenderStatusBar(status string, isErr bool, hints string, width int) string {
	color := ui.ColorMuted
	if isErr {
		color = ui.ColorFailure
	}
	left := lipgloss.NewStyle().Foreground(color).Render("  " + status)
	help := ui.StyleMuted.Render(hints + " ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(help)
	if gap < 0 {
		gap = 0
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color("#111827")).
		Width(width).
		Render(left + lipgloss.NewStyle().Width(gap).Render("") + help)
}

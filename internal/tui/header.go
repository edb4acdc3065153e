package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/dnafinder/internal/ui"
)

// RenderHeader draws the top bar: app name and backend on the left, the
// signed-in account on the right.
func RenderHeader(apiURL, email string, width int) string {
	left := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("#F9FAFB")).
		Render(" dnafinder | " + apiURL)

	account := ui.StyleMuted.Render("not signed in ")
	if email != "" {
		account = lipgloss.NewStyle().Foreground(ui.ColorSuccess).Render(email + " ")
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(account)
	if gap < 0 {
		gap = 0
	}
	padding := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.NewStyle().
		Background(ui.ColorHighlight).
		Width(width).
		Render(left + padding + account)
}

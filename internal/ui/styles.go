package ui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary   = lipgloss.Color("#3B82F6")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorFailure   = lipgloss.Color("#EF4444")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorInfo      = lipgloss.Color("#60A5FA")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorBorder    = lipgloss.Color("#374151")
	ColorHighlight = lipgloss.Color("#1F2937")

	StylePane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StylePaneFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F9FAFB")).
			Background(ColorPrimary).
			Padding(0, 1)

	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleFailure = lipgloss.NewStyle().Foreground(ColorFailure)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)

	// StyleErrorBox frames inline form errors.
	StyleErrorBox = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FCA5A5")).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#B91C1C")).
			Padding(0, 1)

	StyleNoticeBox = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A7F3D0")).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#047857")).
			Padding(0, 1)
)

// Notice renders a form message box; ok selects the success styling.
func Notice(text string, ok bool, width int) string {
	if text == "" {
		return ""
	}
	style := StyleErrorBox
	if ok {
		style = StyleNoticeBox
	}
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(text)
}

func AlgorithmStyle(algorithm string) lipgloss.Style {
	switch algorithm {
	case "kmp":
		return StyleInfo
	case "rabin_karp":
		return StyleWarning
	default:
		return StyleMuted
	}
}

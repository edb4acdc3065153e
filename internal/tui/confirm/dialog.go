package confirm

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/dnafinder/internal/ui"
)

// Action names what the parent should do when the dialog is accepted.
type Action string

const ActionLogout Action = "logout"

type ResultMsg struct {
	Confirmed bool
	Action    Action
}

type Model struct {
	Title   string
	Message string
	Action  Action
	active  bool
	yes     bool
}

func New(title, message string, action Action) Model {
	return Model{
		Title:   title,
		Message: message,
		Action:  action,
		active:  true,
	}
}

func (m Model) IsActive() bool { return m.active }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !m.active || !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		return m.close(true)
	case "n", "N", "esc":
		return m.close(false)
	case "enter":
		return m.close(m.yes)
	case "tab", "left", "right", "h", "l":
		m.yes = !m.yes
	}
	return m, nil
}

func (m Model) close(confirmed bool) (Model, tea.Cmd) {
	m.active = false
	result := ResultMsg{Confirmed: confirmed, Action: m.Action}
	return m, func() tea.Msg { return result }
}

func (m Model) View() string {
	if !m.active {
		return ""
	}

	button := lipgloss.NewStyle().Padding(0, 1)
	yes := button.Foreground(ui.ColorMuted)
	no := button.Bold(true).Background(ui.ColorFailure).Foreground(lipgloss.Color("#F9FAFB"))
	if m.yes {
		yes = button.Bold(true).Background(ui.ColorSuccess).Foreground(lipgloss.Color("#F9FAFB"))
		no = button.Foreground(ui.ColorMuted)
	}

	var b strings.Builder
	b.WriteString(ui.StyleWarning.Bold(true).Render(m.Title) + "\n\n")
	b.WriteString(m.Message + "\n\n")
	b.WriteString(yes.Render("Yes") + "  " + no.Render("No") + "\n\n")
	b.WriteString(ui.StyleMuted.Render("y/n to confirm, esc to cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorWarning).
		Padding(1, 2).
		Width(50).
		Render(b.String())
}

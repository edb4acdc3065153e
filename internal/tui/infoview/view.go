package infoview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/dnafinder/internal/model"
	"github.com/altinukshini/dnafinder/internal/ui"
)

// Model shows every field of one history entry in a scrollable pane.
type Model struct {
	entry    *model.HistoryEntry
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

func New() Model {
	return Model{}
}

func (m *Model) SetEntry(e *model.HistoryEntry) {
	m.entry = e
	if m.ready {
		m.viewport.SetContent(m.render())
		m.viewport.GotoTop()
	}
}

func (m Model) Entry() *model.HistoryEntry {
	return m.entry
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		headerH := 1
		if !m.ready {
			m.viewport = viewport.New(wsm.Width, wsm.Height-headerH)
			m.ready = true
			if m.entry != nil {
				m.viewport.SetContent(m.render())
			}
		} else {
			m.viewport.Width = wsm.Width
			m.viewport.Height = wsm.Height - headerH
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.entry == nil {
		return "\n  Select a search and press enter to view it"
	}

	header := fmt.Sprintf(" Search %s  %3.0f%%", m.entry.ID, m.viewport.ScrollPercent()*100)
	hints := ui.StyleMuted.Render("  j/k:scroll  esc:back")
	headerLine := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("#F9FAFB")).
		Render(header) + hints

	return headerLine + "\n" + m.viewport.View()
}

func (m Model) render() string {
	e := m.entry
	label := lipgloss.NewStyle().Foreground(ui.ColorMuted).Width(16)

	row := func(k, v string) string {
		return "  " + label.Render(k) + v + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(row("ID", string(e.ID)))
	b.WriteString(row("Pattern", lipgloss.NewStyle().Bold(true).Render(e.Pattern)))
	b.WriteString(row("Pattern length", strconv.Itoa(len(e.Pattern))))
	b.WriteString(row("Algorithm", ui.AlgorithmStyle(e.Algorithm).Render(algorithmLabel(e.Algorithm))))
	b.WriteString(row("Matches", strconv.Itoa(e.MatchCount)))
	b.WriteString(row("Execution time", e.Duration()))
	return b.String()
}

func algorithmLabel(s string) string {
	a, err := model.ParseAlgorithm(s)
	if err != nil {
		return s
	}
	return a.Label()
}

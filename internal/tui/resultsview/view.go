package resultsview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/dnafinder/internal/export"
	"github.com/altinukshini/dnafinder/internal/model"
	"github.com/altinukshini/dnafinder/internal/ui"
)

const EmptyText = "No results yet."

// summaryLines is the height of the block above the table.
const summaryLines = 3

type Model struct {
	result *model.SearchResult
	table  table.Model
	width  int
	height int
}

func New() Model {
	t := table.New(
		table.WithColumns(columns(60)),
		table.WithHeight(5),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.ColorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#F9FAFB")).
		Background(ui.ColorHighlight).
		Bold(false)
	t.SetStyles(s)
	return Model{table: t}
}

func columns(width int) []table.Column {
	nameW := width * 30 / 100
	countW := 7
	posW := width - nameW - countW - 6
	if posW < 10 {
		posW = 10
	}
	return []table.Column{
		{Title: "Name", Width: nameW},
		{Title: "Count", Width: countW},
		{Title: "Positions", Width: posW},
	}
}

func (m *Model) SetResult(r *model.SearchResult) {
	m.result = r
	m.table.SetRows(rows(r))
	m.table.GotoTop()
}

func (m Model) Result() *model.SearchResult { return m.result }

func (m *Model) Focus() { m.table.Focus() }

func (m *Model) Blur() { m.table.Blur() }

func rows(r *model.SearchResult) []table.Row {
	if r == nil {
		return nil
	}
	out := make([]table.Row, 0, len(r.Matches))
	for _, match := range r.Matches {
		out = append(out, table.Row{
			match.Name,
			strconv.Itoa(len(match.Positions)),
			export.JoinPositions(match.Positions, ", "),
		})
	}
	return out
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(columns(msg.Width))
		m.table.SetWidth(msg.Width)
		h := msg.Height - summaryLines - 1
		if h < 2 {
			h = 2
		}
		m.table.SetHeight(h)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	title := ui.StyleTitle.Render("Results")
	if m.result == nil {
		return title + "\n\n" + ui.StyleMuted.Render(EmptyText)
	}
	return title + "\n" + m.summary() + "\n" + m.table.View()
}

func (m Model) summary() string {
	r := m.result
	label := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	value := lipgloss.NewStyle().Bold(true)

	field := func(name, v string) string {
		return label.Render(name+": ") + value.Render(v)
	}

	algo := ui.AlgorithmStyle(r.Algorithm).Bold(true).Render(r.Algorithm)
	line1 := []string{
		label.Render("Algorithm: ") + algo,
		field("Time", fmt.Sprintf("%.2f ms", r.ExecutionTimeMS)),
		field("Matches", strconv.Itoa(r.MatchCount)),
	}

	var line2 []string
	if r.Pattern != "" {
		line2 = append(line2, field("Pattern", r.Pattern))
	}
	if r.TotalSequences > 0 {
		line2 = append(line2, field("Sequences", strconv.Itoa(r.TotalSequences)))
	}
	if r.ThreadsUsed > 0 {
		line2 = append(line2, field("Threads", strconv.Itoa(r.ThreadsUsed)))
	}
	if r.HashCollisions > 0 {
		line2 = append(line2, field("Hash collisions", strconv.FormatInt(r.HashCollisions, 10)))
	}

	return strings.Join(line1, "  ") + "\n" + strings.Join(line2, "  ")
}

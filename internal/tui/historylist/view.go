package historylist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/dnafinder/internal/model"
	"github.com/altinukshini/dnafinder/internal/ui"
)

const EmptyText = "No recent searches."

type entryDelegate struct{}

func (d entryDelegate) Height() int                             { return 2 }
func (d entryDelegate) Spacing() int                            { return 1 }
func (d entryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d entryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ei, ok := item.(entryItem)
	if !ok {
		return
	}

	algo := ui.AlgorithmStyle(ei.entry.Algorithm).Render(ei.entry.Algorithm)
	line1 := fmt.Sprintf(" %s — %s", lipgloss.NewStyle().Bold(true).Render(ei.entry.Pattern), algo)
	detail := fmt.Sprintf("   Matches: %d", ei.entry.MatchCount)
	if ei.entry.ExecutionTimeMS != nil {
		detail += "  " + ei.entry.Duration()
	}
	line2 := ui.StyleMuted.Render(detail)

	if index == m.Index() {
		hl := lipgloss.NewStyle().Background(ui.ColorHighlight).Width(m.Width())
		line1 = hl.Render(line1)
		line2 = hl.Render(line2)
	}
	fmt.Fprintf(w, "%s\n%s", line1, line2)
}

type entryItem struct {
	entry model.HistoryEntry
}

func (e entryItem) FilterValue() string {
	return e.entry.Pattern + " " + e.entry.Algorithm
}

type Model struct {
	list    list.Model
	entries []model.HistoryEntry
	spinner spinner.Model
	loading bool
	loaded  bool
	width   int
	height  int
}

func New() Model {
	l := list.New(nil, entryDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.StyleInfo

	return Model{list: l, spinner: sp}
}

// Loading marks a fetch in flight and returns the spinner tick.
func (m *Model) Loading() tea.Cmd {
	m.loading = true
	return m.spinner.Tick
}

func (m Model) IsLoading() bool { return m.loading }

func (m Model) Entries() []model.HistoryEntry { return m.entries }

func (m Model) SelectedEntry() *model.HistoryEntry {
	i := m.list.Index()
	if i < 0 || i >= len(m.entries) {
		return nil
	}
	return &m.entries[i]
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.HistoryLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			// Errors are only logged by the parent; keep what we had.
			return m, nil
		}
		m.loaded = true
		m.entries = msg.Entries
		items := make([]list.Item, len(msg.Entries))
		for i, e := range msg.Entries {
			items[i] = entryItem{entry: e}
		}
		cmd := m.list.SetItems(items)
		m.list.ResetSelected()
		return m, cmd

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	title := ui.StyleTitle.Render("Recent searches")
	if m.loading {
		title += " " + m.spinner.View()
	}
	if len(m.entries) == 0 {
		if m.loading && !m.loaded {
			return title + "\n\n" + ui.StyleMuted.Render("Loading...")
		}
		return title + "\n\n" + ui.StyleMuted.Render(EmptyText)
	}
	return title + "\n\n" + m.list.View()
}

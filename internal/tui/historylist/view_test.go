package historylist

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/dnafinder/internal/model"
	"github.com/altinukshini/dnafinder/internal/ui"
)

func sized() Model {
	m := New()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	return m
}

func TestEmptyHistory(t *testing.T) {
	m := sized()
	m, _ = m.Update(ui.HistoryLoadedMsg{Entries: []model.HistoryEntry{}})

	view := m.View()
	if !strings.Contains(view, EmptyText) {
		t.Errorf("expected %q, got:\n%s", EmptyText, view)
	}
}

func TestRendersEntriesInOrder(t *testing.T) {
	m := sized()
	entries := []model.HistoryEntry{
		{ID: "1", Pattern: "ACGT", Algorithm: "kmp", MatchCount: 4},
		{ID: "2", Pattern: "TTAG", Algorithm: "rabin_karp", MatchCount: 0},
		{ID: "3", Pattern: "GGCC", Algorithm: "kmp", MatchCount: 12},
	}
	m, _ = m.Update(ui.HistoryLoadedMsg{Entries: entries})

	if got := len(m.list.Items()); got != len(entries) {
		t.Fatalf("expected %d items, got %d", len(entries), got)
	}

	view := m.View()
	if strings.Contains(view, EmptyText) {
		t.Error("empty text shown with entries")
	}
	last := -1
	for _, e := range entries {
		i := strings.Index(view, e.Pattern)
		if i < 0 {
			t.Fatalf("view missing %q:\n%s", e.Pattern, view)
		}
		if i < last {
			t.Errorf("%q rendered out of order", e.Pattern)
		}
		last = i
	}
	for _, want := range []string{"Matches: 4", "Matches: 0", "Matches: 12", "rabin_karp"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestErrorKeepsPreviousEntries(t *testing.T) {
	m := sized()
	m, _ = m.Update(ui.HistoryLoadedMsg{Entries: []model.HistoryEntry{{ID: "1", Pattern: "ACGT", Algorithm: "kmp"}}})
	m.Loading()
	m, _ = m.Update(ui.HistoryLoadedMsg{Err: errors.New("boom")})

	if m.IsLoading() {
		t.Error("loading should end on error")
	}
	if len(m.Entries()) != 1 {
		t.Errorf("entries dropped on error: %v", m.Entries())
	}
}

func TestSelectedEntry(t *testing.T) {
	m := sized()
	if m.SelectedEntry() != nil {
		t.Error("expected no selection on empty list")
	}
	m, _ = m.Update(ui.HistoryLoadedMsg{Entries: []model.HistoryEntry{
		{ID: "1", Pattern: "ACGT"},
		{ID: "2", Pattern: "TTAG"},
	}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if e := m.SelectedEntry(); e == nil || e.ID != "2" {
		t.Errorf("selected = %+v, want id 2", e)
	}
}

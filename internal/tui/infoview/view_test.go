package infoview

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/dnafinder/internal/model"
)

func TestEmptyInfo(t *testing.T) {
	m := New()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	if !strings.Contains(m.View(), "Select a search") {
		t.Errorf("unexpected view:\n%s", m.View())
	}
}

func TestRendersEntry(t *testing.T) {
	ms := 12.5
	m := New()
	m.SetEntry(&model.HistoryEntry{ID: "42", Pattern: "GATTACA", Algorithm: "rabin_karp", MatchCount: 9, ExecutionTimeMS: &ms})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})

	view := m.View()
	for _, want := range []string{"Search 42", "GATTACA", "Rabin-Karp", "9", "12.5 ms"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

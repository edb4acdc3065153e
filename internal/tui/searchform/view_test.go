package searchform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/dnafinder/internal/model"
)

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestDefaultsToConfiguredAlgorithm(t *testing.T) {
	if got := New("").Algorithm(); got != model.AlgorithmKMP {
		t.Errorf("default algorithm = %q, want kmp", got)
	}
	if got := New(model.AlgorithmRabinKarp).Algorithm(); got != model.AlgorithmRabinKarp {
		t.Errorf("algorithm = %q, want rabin_karp", got)
	}
}

func TestAlgorithmToggle(t *testing.T) {
	m := New(model.AlgorithmKMP)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.Algorithm() != model.AlgorithmRabinKarp {
		t.Fatalf("expected rabin_karp after ctrl+t, got %q", m.Algorithm())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.Algorithm() != model.AlgorithmKMP {
		t.Fatalf("expected kmp after second ctrl+t, got %q", m.Algorithm())
	}
}

func TestRejectsNonCSVFileOnSelect(t *testing.T) {
	m := New(model.AlgorithmKMP)
	cmd := m.SetFile("data.txt")
	if cmd != nil {
		t.Error("expected no preview read for a non-csv file")
	}
	if m.Message() != "Only .csv files are allowed" {
		t.Errorf("message = %q", m.Message())
	}
}

func TestPreviewShowsFirstRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seqs.csv")
	data := "name,sequence\ngeneA,ACGT\ngeneB,TTGA\ngeneC,CCCC\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	m := New(model.AlgorithmKMP)
	cmd := m.SetFile(path)
	if cmd == nil {
		t.Fatal("expected preview cmd")
	}
	m, _ = m.Update(cmd())

	if got := len(m.Preview()); got != 3 {
		t.Fatalf("preview rows = %d, want 3", got)
	}
	view := m.View()
	if !strings.Contains(view, "geneB, TTGA") {
		t.Errorf("preview missing from view:\n%s", view)
	}
	if strings.Contains(view, "geneC") {
		t.Error("preview should stop after three rows")
	}
}

func TestEnterSubmitsInput(t *testing.T) {
	m := New(model.AlgorithmKMP)
	m = typeText(m, "acgt")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected submit cmd")
	}
	var submit *SubmitMsg
	for _, msg := range collect(cmd) {
		if s, ok := msg.(SubmitMsg); ok {
			submit = &s
		}
	}
	if submit == nil {
		t.Fatal("no SubmitMsg emitted")
	}
	if submit.Input.Pattern != "acgt" || submit.Input.Algorithm != model.AlgorithmKMP {
		t.Errorf("unexpected input %+v", submit.Input)
	}
}

func TestDoneShowsMessage(t *testing.T) {
	m := New(model.AlgorithmKMP)
	m.Searching()
	if !strings.Contains(m.View(), "Searching...") {
		t.Error("expected in-flight indicator")
	}
	m.Done("Invalid pattern (only A, C, G, T; minimum 3)", false)
	if m.Loading() {
		t.Error("Done should clear loading")
	}
	if !strings.Contains(m.View(), "Invalid pattern") {
		t.Error("expected message in view")
	}
}

// collect runs cmd and flattens batches.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestPatternKeepsSurroundingSpace(t *testing.T) {
	m := New(model.AlgorithmKMP)
	m.SetPattern(" ACG")
	if got := m.Input().Pattern; got != " ACG" {
		t.Errorf("pattern = %q, want untrimmed %q", got, " ACG")
	}
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	s := strings.Repeat("é", 20)
	got := truncate(s, 10)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate split a rune: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis, got %q", got)
	}
	if w := utf8.RuneCountInString(got); w != 10 {
		t.Errorf("width = %d, want 10", w)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("short string changed: %q", got)
	}
}

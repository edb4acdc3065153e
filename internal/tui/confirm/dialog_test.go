package confirm

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestDialogResults(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want bool
	}{
		{"y accepts", []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune{'y'}}}, true},
		{"n declines", []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune{'n'}}}, false},
		{"esc declines", []tea.KeyMsg{{Type: tea.KeyEsc}}, false},
		{"enter defaults to no", []tea.KeyMsg{{Type: tea.KeyEnter}}, false},
		{"tab then enter accepts", []tea.KeyMsg{{Type: tea.KeyTab}, {Type: tea.KeyEnter}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New("Log out", "End this session?", ActionLogout)
			var cmd tea.Cmd
			for _, k := range tt.keys {
				m, cmd = m.Update(k)
			}
			if m.IsActive() {
				t.Fatal("dialog should close")
			}
			if cmd == nil {
				t.Fatal("expected result cmd")
			}
			res, ok := cmd().(ResultMsg)
			if !ok {
				t.Fatalf("expected ResultMsg, got %T", cmd())
			}
			if res.Confirmed != tt.want || res.Action != ActionLogout {
				t.Errorf("got %+v, want confirmed=%v", res, tt.want)
			}
		})
	}
}

func TestInactiveDialogIgnoresKeys(t *testing.T) {
	var m Model
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if cmd != nil || m.IsActive() {
		t.Error("zero dialog should ignore input")
	}
	if m.View() != "" {
		t.Error("inactive dialog should render nothing")
	}
}

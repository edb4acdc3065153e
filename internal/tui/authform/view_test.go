package authform

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/dnafinder/internal/model"
)

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestSubmitEmitsCredentials(t *testing.T) {
	m := New(ModeLogin)
	m = typeText(m, "ana@lab.org")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "secret")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected submit cmd")
	}
	submit, ok := cmd().(SubmitMsg)
	if !ok {
		t.Fatalf("expected SubmitMsg, got %T", cmd())
	}
	want := model.Credentials{Email: "ana@lab.org", Password: "secret"}
	if submit.Creds != want || submit.Mode != ModeLogin {
		t.Errorf("got %+v", submit)
	}
	if !m.Loading() {
		t.Error("expected loading after submit")
	}
}

func TestEnterOnEmailMovesToPassword(t *testing.T) {
	m := New(ModeRegister)
	m = typeText(m, "ana@lab.org")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Loading() {
		t.Error("enter on the email field should not submit")
	}
	m = typeText(m, "pw")
	if got := m.Credentials().Password; got != "pw" {
		t.Errorf("password = %q, want pw", got)
	}
}

func TestPasswordIsMasked(t *testing.T) {
	m := New(ModeLogin)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "hunter2")
	if strings.Contains(m.View(), "hunter2") {
		t.Error("password rendered in clear text")
	}
}

func TestSwitchBetweenForms(t *testing.T) {
	tests := []struct {
		name string
		from Mode
		key  tea.KeyMsg
		want Mode
	}{
		{"login to register", ModeLogin, tea.KeyMsg{Type: tea.KeyCtrlR}, ModeRegister},
		{"register to login", ModeRegister, tea.KeyMsg{Type: tea.KeyCtrlL}, ModeLogin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.from)
			_, cmd := m.Update(tt.key)
			if cmd == nil {
				t.Fatal("expected switch cmd")
			}
			sw, ok := cmd().(SwitchMsg)
			if !ok || sw.To != tt.want {
				t.Errorf("got %#v, want SwitchMsg{%v}", cmd(), tt.want)
			}
		})
	}
}

func TestErrorMessageRendered(t *testing.T) {
	m := New(ModeLogin)
	m.SetError("Invalid credentials")
	if !strings.Contains(m.View(), "Invalid credentials") {
		t.Error("expected error message in view")
	}
	if m.Loading() {
		t.Error("SetError should clear loading")
	}
}

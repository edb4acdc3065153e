package authform

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/dnafinder/internal/model"
	"github.com/altinukshini/dnafinder/internal/ui"
)

type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

func (m Mode) Title() string {
	if m == ModeRegister {
		return "Create account"
	}
	return "Log in"
}

// SubmitMsg is emitted on enter; the parent dispatches the request.
type SubmitMsg struct {
	Mode  Mode
	Creds model.Credentials
}

// SwitchMsg asks the parent to route to the other form.
type SwitchMsg struct {
	To Mode
}

const (
	fieldEmail = iota
	fieldPassword
	fieldCount
)

type Model struct {
	mode    Mode
	inputs  [fieldCount]textinput.Model
	focus   int
	message string
	ok      bool
	loading bool
	width   int
}

func New(mode Mode) Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.Prompt = "Email:    "
	email.CharLimit = 254
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Password: "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128

	return Model{
		mode:   mode,
		inputs: [fieldCount]textinput.Model{email, password},
	}
}

func (m Model) Current() Mode { return m.mode }

func (m Model) Credentials() model.Credentials {
	return model.Credentials{
		Email:    strings.TrimSpace(m.inputs[fieldEmail].Value()),
		Password: m.inputs[fieldPassword].Value(),
	}
}

func (m Model) Loading() bool { return m.loading }

func (m Model) Message() string { return m.message }

// SetError shows text as a failure and ends the loading state.
func (m *Model) SetError(text string) {
	m.loading = false
	m.ok = false
	m.message = text
}

// SetNotice shows text as a success message.
func (m *Model) SetNotice(text string) {
	m.loading = false
	m.ok = true
	m.message = text
}

func (m *Model) SetEmail(email string) {
	m.inputs[fieldEmail].SetValue(email)
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		for i := range m.inputs {
			m.inputs[i].Width = msg.Width - 16
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ui.Keys.Register) && m.mode == ModeLogin:
			return m, func() tea.Msg { return SwitchMsg{To: ModeRegister} }
		case key.Matches(msg, ui.Keys.Login) && m.mode == ModeRegister:
			return m, func() tea.Msg { return SwitchMsg{To: ModeLogin} }
		case key.Matches(msg, ui.Keys.Tab), msg.String() == "down":
			return m, m.setFocus((m.focus + 1) % fieldCount)
		case key.Matches(msg, ui.Keys.ShiftTab), msg.String() == "up":
			return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		case key.Matches(msg, ui.Keys.Enter):
			if m.loading {
				return m, nil
			}
			if m.focus == fieldEmail {
				return m, m.setFocus(fieldPassword)
			}
			m.loading = true
			m.message = ""
			submit := SubmitMsg{Mode: m.mode, Creds: m.Credentials()}
			return m, func() tea.Msg { return submit }
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(ui.StyleTitle.Render(m.mode.Title()) + "\n\n")
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View() + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(ui.StyleMuted.Render("Please wait...") + "\n")
	case m.message != "":
		b.WriteString(ui.Notice(m.message, m.ok, m.width) + "\n")
	}

	hint := "ctrl+r: create an account"
	if m.mode == ModeRegister {
		hint = "ctrl+l: back to log in"
	}
	b.WriteString("\n" + ui.StyleMuted.Render("enter: submit  tab: next field  "+hint))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

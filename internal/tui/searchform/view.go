package searchform

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/altinukshini/dnafinder/internal/csvfile"
	"github.com/altinukshini/dnafinder/internal/model"
	"github.com/altinukshini/dnafinder/internal/ui"
	"github.com/altinukshini/dnafinder/internal/validation"
)

// SubmitMsg carries the form contents to the parent, which runs the search.
type SubmitMsg struct {
	Input validation.SearchInput
}

// PreviewLoadedMsg holds the first rows of the selected CSV file.
type PreviewLoadedMsg struct {
	Path string
	Rows [][]string
	Err  error
}

const (
	fieldPattern = iota
	fieldFile
	fieldAlgorithm
	fieldCount
)

type Model struct {
	pattern   textinput.Model
	file      textinput.Model
	algorithm model.Algorithm
	focus     int
	spinner   spinner.Model

	preview     [][]string
	previewPath string

	message string
	ok      bool
	loading bool
	width   int
}

func New(algorithm model.Algorithm) Model {
	pattern := textinput.New()
	pattern.Placeholder = "ACGT"
	pattern.Prompt = "Pattern:   "
	pattern.CharLimit = 1024
	pattern.Focus()

	file := textinput.New()
	file.Placeholder = "/path/to/sequences.csv"
	file.Prompt = "CSV file:  "
	file.CharLimit = 4096

	if algorithm == "" {
		algorithm = model.AlgorithmKMP
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.StyleInfo

	return Model{
		pattern:   pattern,
		file:      file,
		algorithm: algorithm,
		spinner:   sp,
	}
}

func (m Model) Input() validation.SearchInput {
	return validation.SearchInput{
		FilePath:  strings.TrimSpace(m.file.Value()),
		Pattern:   m.pattern.Value(),
		Algorithm: m.algorithm,
	}
}

func (m Model) Algorithm() model.Algorithm { return m.algorithm }

func (m Model) Loading() bool { return m.loading }

func (m Model) Message() string { return m.message }

func (m Model) Preview() [][]string { return m.preview }

// Searching puts the form in its in-flight state.
func (m *Model) Searching() tea.Cmd {
	m.loading = true
	m.message = ""
	return m.spinner.Tick
}

// Done ends the in-flight state with a message; ok selects success styling.
func (m *Model) Done(text string, ok bool) {
	m.loading = false
	m.ok = ok
	m.message = text
}

// SetFile fills the file field, as if the user had typed it.
func (m *Model) SetFile(path string) tea.Cmd {
	m.file.SetValue(path)
	return m.loadPreview()
}

func (m *Model) SetPattern(p string) {
	m.pattern.SetValue(p)
}

// Blur drops input focus so the parent can route keys elsewhere.
func (m *Model) Blur() {
	m.pattern.Blur()
	m.file.Blur()
}

func (m *Model) Focus() tea.Cmd {
	return m.setFocus(m.focus)
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.pattern.Width = msg.Width - 14
		m.file.Width = msg.Width - 14
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PreviewLoadedMsg:
		if msg.Path != m.Input().FilePath {
			return m, nil
		}
		if msg.Err != nil {
			m.preview = nil
			m.previewPath = ""
			m.Done(fmt.Sprintf("Could not read %s: %v", msg.Path, msg.Err), false)
			return m, nil
		}
		m.preview = msg.Rows
		m.previewPath = msg.Path
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ui.Keys.Algorithm):
			m.algorithm = m.algorithm.Next()
			return m, nil
		case msg.String() == "down":
			return m, m.moveFocus(1)
		case msg.String() == "up":
			return m, m.moveFocus(-1)
		case key.Matches(msg, ui.Keys.Enter):
			submit := SubmitMsg{Input: m.Input()}
			return m, tea.Batch(m.loadPreview(), func() tea.Msg { return submit })
		}
		if m.focus == fieldAlgorithm {
			switch msg.String() {
			case "left", "right", " ", "h", "l":
				m.algorithm = m.algorithm.Next()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldPattern:
		m.pattern, cmd = m.pattern.Update(msg)
	case fieldFile:
		m.file, cmd = m.file.Update(msg)
	}
	return m, cmd
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	next := (m.focus + delta + fieldCount) % fieldCount
	var cmds []tea.Cmd
	if m.focus == fieldFile {
		cmds = append(cmds, m.loadPreview())
	}
	cmds = append(cmds, m.setFocus(next))
	return tea.Batch(cmds...)
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.pattern.Blur()
	m.file.Blur()
	m.focus = i
	switch i {
	case fieldPattern:
		return m.pattern.Focus()
	case fieldFile:
		return m.file.Focus()
	}
	return nil
}

// loadPreview reads the head of the chosen file when it changed since the
// last preview. A name without the .csv suffix is rejected right away.
func (m *Model) loadPreview() tea.Cmd {
	path := m.Input().FilePath
	if path == "" || path == m.previewPath {
		return nil
	}
	if !validation.IsCSVFile(path) {
		m.preview = nil
		m.previewPath = ""
		m.Done("Only .csv files are allowed", false)
		return nil
	}
	m.message = ""
	return func() tea.Msg {
		rows, err := csvfile.Preview(path, csvfile.PreviewRows)
		return PreviewLoadedMsg{Path: path, Rows: rows, Err: err}
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(ui.StyleTitle.Render("New search") + "\n\n")
	b.WriteString(m.pattern.View() + "\n")
	b.WriteString(m.file.View() + "\n")
	b.WriteString(m.renderAlgorithm() + "\n")

	if len(m.preview) > 0 {
		b.WriteString("\n" + ui.StyleMuted.Render("Preview") + "\n")
		for _, row := range m.preview {
			b.WriteString("  " + truncate(strings.Join(row, ", "), m.width-4) + "\n")
		}
	}

	b.WriteString("\n")
	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Searching...\n")
	case m.message != "":
		b.WriteString(ui.Notice(m.message, m.ok, m.width) + "\n")
	}
	return b.String()
}

func (m Model) renderAlgorithm() string {
	prompt := "Algorithm: "
	if m.focus == fieldAlgorithm {
		prompt = lipgloss.NewStyle().Foreground(ui.ColorPrimary).Render(prompt)
	}
	var opts []string
	for _, a := range model.Algorithms {
		label := a.Label()
		if a == m.algorithm {
			label = ui.AlgorithmStyle(string(a)).Bold(true).Render("(•) " + label)
		} else {
			label = ui.StyleMuted.Render("( ) " + label)
		}
		opts = append(opts, label)
	}
	return prompt + strings.Join(opts, "  ")
}

func truncate(s string, n int) string {
	if n <= 3 {
		return s
	}
	return ansi.Truncate(s, n, "...")
}

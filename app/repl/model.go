// Package repl is an interactive terminal prompt for the evaluator.
package repl

import (
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tcalc/app/lang"
)

// maxVisible caps how many history entries are drawn.
const maxVisible = 20

// Entry is one evaluated line in the scroll-back.
type Entry struct {
	Input  string
	Output string
	IsErr  bool
}

// Model is the bubbletea model for the REPL.
type Model struct {
	eval    *lang.Evaluator
	input   textinput.Model
	entries []Entry
	recall  int // index into entries while browsing with up/down
	width   int
}

// NewModel creates a REPL evaluating with eval.
func NewModel(eval *lang.Evaluator) Model {
	ti := textinput.New()
	ti.Placeholder = "2025/09/27 + 2d"
	ti.Prompt = "> "
	ti.CharLimit = 1024
	ti.Width = 60
	ti.Focus()

	return Model{eval: eval, input: ti}
}

// Entries returns the evaluated history, oldest first.
func (m Model) Entries() []Entry {
	return m.entries
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			m.submit()
			return m, nil
		case "up":
			if m.recall > 0 {
				m.recall--
				m.input.SetValue(m.entries[m.recall].Input)
				m.input.CursorEnd()
			}
			return m, nil
		case "down":
			if m.recall < len(m.entries)-1 {
				m.recall++
				m.input.SetValue(m.entries[m.recall].Input)
				m.input.CursorEnd()
			} else {
				m.recall = len(m.entries)
				m.input.Reset()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 4 {
			m.input.Width = msg.Width - 4
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit() {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if lang.IsCommentOrBlank(line) {
		return
	}

	entry := Entry{Input: line}
	out, err := m.eval.Evaluate(line)
	if err != nil {
		entry.Output = err.Error()
		entry.IsErr = true
	} else {
		entry.Output = out
	}
	m.entries = append(m.entries, entry)
	m.recall = len(m.entries)
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("tcalc"))
	b.WriteString("\n")

	start := max(len(m.entries)-maxVisible, 0)
	for _, e := range m.entries[start:] {
		b.WriteString(InputStyle.Render(e.Input))
		b.WriteString(" → ")
		if e.IsErr {
			b.WriteString(ErrorStyle.Render(e.Output))
		} else {
			b.WriteString(ResultStyle.Render(e.Output))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("enter: evaluate • ↑/↓: history • esc: quit"))
	b.WriteString("\n")
	return b.String()
}

// Run starts the REPL on the given terminal streams and blocks until the
// user quits.
func Run(eval *lang.Evaluator, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(NewModel(eval), tea.WithInput(in), tea.WithOutput(out))
	_, err := p.Run()
	return err
}

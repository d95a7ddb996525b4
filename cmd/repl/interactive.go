package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/wasmrepl/executor"
	"github.com/wippyai/wasmrepl/parser"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	panelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type historyEntry struct {
	input  string
	output string
	err    error
}

type replModel struct {
	exec    *executor.Executor
	input   textinput.Model
	history []historyEntry
	busy    bool // a line is being evaluated; Enter is ignored until it finishes
}

type evalResultMsg struct {
	input  string
	output string
	err    error
}

func newReplModel() *replModel {
	ti := textinput.New()
	ti.Placeholder = "i32.const 1  i32.const 2  i32.add"
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()

	return &replModel{exec: executor.New(), input: ti}
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *replModel) evalCmd(src string) tea.Cmd {
	return func() tea.Msg {
		line, err := parser.ParseLine(src)
		if err != nil {
			return evalResultMsg{input: src, err: err}
		}
		out, err := m.exec.ExecuteLine(line)
		return evalResultMsg{input: src, output: out, err: err}
	}
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter":
			src := strings.TrimSpace(m.input.Value())
			if src == "" || m.busy {
				return m, nil
			}
			m.input.SetValue("")
			m.busy = true
			return m, m.evalCmd(src)
		}

	case evalResultMsg:
		m.busy = false
		m.history = append(m.history, historyEntry{input: msg.input, output: msg.output, err: msg.err})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *replModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("wasmrepl"))
	b.WriteString("\n\n")

	start := 0
	if len(m.history) > 12 {
		start = len(m.history) - 12
	}
	for _, h := range m.history[start:] {
		b.WriteString(promptStyle.Render("> " + h.input))
		b.WriteString("\n")
		if h.err != nil {
			b.WriteString(errorStyle.Render(h.err.Error()))
		} else {
			b.WriteString(resultStyle.Render(h.output))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(panelStyle.Render(m.renderState()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter run line • ctrl+c quit"))

	return b.String()
}

// renderState renders the session frame's live stack, local count, and
// registered function count, so the interpreter's internal state stays
// visible between lines.
func (m *replModel) renderState() string {
	session := m.exec.Stack.Top()
	block := session.Top()

	values := block.Stack.Values()
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}

	return fmt.Sprintf("stack: [%s]  locals: %d  funcs: %d",
		strings.Join(parts, ", "), session.Locals.Len(), m.exec.Funcs.Len())
}

func runInteractive() error {
	p := tea.NewProgram(newReplModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	frameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	topStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const maxHistory = 8

type historyEntry struct {
	line string
	err  bool
}

type interactiveModel struct {
	session *session
	history []historyEntry
	input   textinput.Model
}

func newInteractiveModel(s *session) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "push 16"
	ti.Prompt = "> "
	ti.Width = 40
	ti.Focus()
	return &interactiveModel{session: s, input: ti}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "quit" || line == "q" {
				return m, tea.Quit
			}
			if line != "" {
				m.exec(line)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) exec(line string) {
	ops, err := parseOps(line)
	if err != nil {
		m.record(fmt.Sprintf("%s: %v", line, err), true)
		return
	}
	for _, o := range ops {
		out, err := m.session.apply(o)
		if err != nil {
			m.record(fmt.Sprintf("%s: %v", o, err), true)
			continue
		}
		m.record(out, false)
	}
}

func (m *interactiveModel) record(line string, isErr bool) {
	m.history = append(m.history, historyEntry{line: line, err: isErr})
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Stack Explorer"))
	b.WriteString(" ")
	b.WriteString(m.session.state())
	b.WriteString("\n\n")

	frames := m.session.region.Frames()
	if len(frames) == 0 {
		b.WriteString(helpStyle.Render("  (empty stack)"))
		b.WriteString("\n")
	}
	for i := len(frames) - 1; i >= 0; i-- {
		line := fmt.Sprintf("  #%-3d %s  %d bytes", i, frames[i], frames[i].Length())
		if i == len(frames)-1 {
			b.WriteString(topStyle.Render(line))
		} else {
			b.WriteString(frameStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(fmt.Sprintf("  base [0, %d)", m.session.region.Base())))
	b.WriteString("\n\n")

	for _, h := range m.history {
		if h.err {
			b.WriteString(errorStyle.Render(h.line))
		} else {
			b.WriteString(resultStyle.Render(h.line))
		}
		b.WriteString("\n")
	}
	if len(m.history) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("push N • alloc N A • pop • preview N • mark • release • reset • esc quit"))

	return b.String()
}

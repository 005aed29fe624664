// Package prompt implements the yes/no confirmation gate shown before a
// rename batch is applied. On a terminal it runs a minimal bubbletea
// model; on a non-terminal stdin it falls back to reading one line.
// Declining is a clean abort, not an error.
package prompt

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	questionStyle = lipgloss.NewStyle().Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// confirmModel is the one-keypress yes/no prompt.
type confirmModel struct {
	question string
	answer   bool
	done     bool
}

// Init implements tea.Model.
func (m confirmModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "y", "Y", "enter":
		m.answer = true
		m.done = true
		return m, tea.Quit
	case "n", "N", "q", "esc", "ctrl+c":
		m.answer = false
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	return questionStyle.Render(m.question) + " " + hintStyle.Render("[y/n]") + " "
}

// Confirm asks the user a yes/no question and blocks for the answer.
// When stdin is not a terminal the prompt degrades to a plain line read,
// and an unreadable stdin counts as "no".
func Confirm(question string) (bool, error) {
	if !isTerminal(os.Stdin) {
		return confirmPlain(question)
	}

	final, err := tea.NewProgram(confirmModel{question: question}).Run()
	if err != nil {
		return false, fmt.Errorf("running confirmation prompt: %w", err)
	}
	m, ok := final.(confirmModel)
	if !ok {
		return false, nil
	}
	return m.answer, nil
}

// confirmPlain reads a y/n answer from a non-terminal stdin.
func confirmPlain(question string) (bool, error) {
	fmt.Fprintf(os.Stderr, "%s [y/n] ", question)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// isTerminal reports whether f is attached to a character device.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

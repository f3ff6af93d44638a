// Package keymenu reads a single keypress from the terminal with a one-line
// bubbletea program.
package keymenu

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrInterrupted is returned by Read when the user pressed ctrl+c or esc.
var ErrInterrupted = errors.New("interrupted")

type keyMap struct {
	Quit  key.Binding
	Blank key.Binding
}

var defaultKeys = keyMap{
	Quit:  key.NewBinding(key.WithKeys("ctrl+c", "esc")),
	Blank: key.NewBinding(key.WithKeys("enter", " ", "tab")),
}

// Model prompts once and records the first key pressed.
type Model struct {
	prompt      string
	promptStyle lipgloss.Style
	keys        keyMap

	pressed     string
	done        bool
	interrupted bool
}

// New creates a key menu model showing prompt.
func New(prompt string) *Model {
	return &Model{
		prompt:      prompt,
		promptStyle: lipgloss.NewStyle(),
		keys:        defaultKeys,
	}
}

// WithPromptStyle sets the style the prompt is rendered with.
func (m *Model) WithPromptStyle(s lipgloss.Style) *Model {
	m.promptStyle = s
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.done {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.interrupted = true
	case key.Matches(keyMsg, m.keys.Blank):
		m.pressed = ""
	case keyMsg.Type == tea.KeyRunes && len(keyMsg.Runes) > 0:
		m.pressed = string(keyMsg.Runes[0])
	default:
		m.pressed = keyMsg.String()
	}
	m.done = true
	return m, tea.Quit
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.promptStyle.Render(m.prompt))
	if m.done {
		b.WriteString(m.pressed)
		b.WriteString("\n")
	}
	return b.String()
}

// Pressed returns the key that ended the program, or "" for a blank key.
func (m *Model) Pressed() string {
	return m.pressed
}

// Interrupted reports whether the user cancelled the prompt.
func (m *Model) Interrupted() bool {
	return m.interrupted
}

// Read runs a key menu against the given terminal streams and returns the
// pressed key.
func Read(prompt string, in io.Reader, out io.Writer, style lipgloss.Style) (string, error) {
	model := New(prompt).WithPromptStyle(style)
	final, err := tea.NewProgram(model, tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(*Model)
	if !ok {
		return "", errors.New("unexpected model type after key menu")
	}
	if m.Interrupted() {
		return "", ErrInterrupted
	}
	return m.Pressed(), nil
}

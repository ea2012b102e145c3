package console

import (
	"bytes"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Transcript collects platform output between dispatches.
type Transcript struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (t *Transcript) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.Write(p)
}

// Drain returns the lines written since the last Drain.
func (t *Transcript) Drain() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := strings.TrimRight(t.buf.String(), "\n")
	t.buf.Reset()
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

type outputMsg []string

var (
	inputEcho = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	hintStyle = lipgloss.NewStyle().Faint(true)
)

// Model is an interactive prompt that hands each entered line to dispatch
// and shows what the bot printed into the transcript.
type Model struct {
	input    textinput.Model
	out      *Transcript
	dispatch func(line string)
	lines    []string
	height   int
}

func NewModel(out *Transcript, dispatch func(line string)) Model {
	input := textinput.New()
	input.Prompt = "❯ "
	input.Placeholder = "!help"
	input.CharLimit = 2000
	input.Focus()
	return Model{input: input, out: out, dispatch: dispatch, height: 20}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-3, 1)
		return m, nil
	case outputMsg:
		m.lines = append(m.lines, msg...)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if line == "" {
				return m, nil
			}
			if line == "/quit" {
				return m, tea.Quit
			}
			m.lines = append(m.lines, inputEcho.Render("> "+line))
			return m, m.run(line)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) run(line string) tea.Cmd {
	return func() tea.Msg {
		m.dispatch(line)
		return outputMsg(m.out.Drain())
	}
}

func (m Model) View() string {
	lines := m.lines
	if len(lines) > m.height {
		lines = lines[len(lines)-m.height:]
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l + "\n")
	}
	b.WriteString(m.input.View() + "\n")
	b.WriteString(hintStyle.Render("enter to send, esc to quit"))
	return b.String()
}

// Lines returns the transcript shown so far.
func (m Model) Lines() []string { return append([]string(nil), m.lines...) }

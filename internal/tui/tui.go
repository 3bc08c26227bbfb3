// Package tui implements the interactive p/c/r/h/q menu (spec.md §6),
// reusing the teacher's Bubble Tea/Bubbles/Lipgloss stack from its own
// mon/monitor programs rather than hand-rolling a readline loop.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/newhook/hybridmem/internal/config"
	"github.com/newhook/hybridmem/internal/engine"
	"github.com/newhook/hybridmem/internal/obslog"
	"github.com/newhook/hybridmem/internal/report"
	"github.com/newhook/hybridmem/internal/trace"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}).
			Padding(1, 2)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"})

	helpText = "p: print stats   c: clear   r: run trace   h: help   q: quit"
)

const helpBody = `Commands:
  p  print current statistics
  c  clear all counters and tier state
  r  run a trace (prompts for a file path; blank falls back to the
     synthetic generator configured by trace_lines)
  h  show this help
  q  quit`

// Model is the Bubble Tea model backing the interactive session. It owns
// the Engine directly rather than going through a channel, since the
// program is single-threaded (spec.md §10 Non-goals).
type Model struct {
	eng *engine.Engine
	cfg config.Config
	log *obslog.Logger

	body       string
	awaitInput bool
	input      textinput.Model

	width, height int
}

// New constructs the interactive model around eng.
func New(eng *engine.Engine, cfg config.Config, log *obslog.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = "trace file path (blank for synthetic)"
	ti.CharLimit = 256
	ti.Width = 48

	return Model{
		eng:   eng,
		cfg:   cfg,
		log:   log,
		body:  "Ready. " + helpText,
		input: ti,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.awaitInput {
			switch msg.Type {
			case tea.KeyEnter:
				path := m.input.Value()
				m.input.SetValue("")
				m.input.Blur()
				m.awaitInput = false
				m.body = m.runTrace(path)
				return m, nil
			case tea.KeyEsc:
				m.input.SetValue("")
				m.input.Blur()
				m.awaitInput = false
				m.body = "Run cancelled. " + helpText
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "p":
			m.body = report.String(m.eng)
		case "c":
			m.eng.Clear()
			m.body = messageStyle.Render("Counters and tier state cleared.")
		case "r":
			m.awaitInput = true
			m.input.Focus()
			return m, textinput.Blink
		case "h":
			m.body = helpBody
		}
	}

	return m, nil
}

// runTrace executes a full run against either the file at path or, when
// path is blank, a synthetic generator seeded per spec.md §6, and returns
// the resulting stats text (the same flow as MemorySimulator::run() in
// original_source).
func (m Model) runTrace(path string) string {
	path = strings.TrimSpace(path)

	if path == "" {
		gen := trace.NewGenerator(1)
		for _, a := range gen.GenerateN(m.cfg.TraceLines, func(done, total uint64) {
			m.log.GenerationProgress(done, total)
		}) {
			m.eng.ProcessAccess(a.Op, a.Address)
		}
		return "Synthetic run complete.\n\n" + report.String(m.eng)
	}

	f, err := os.Open(path)
	if err != nil {
		return messageStyle.Render(fmt.Sprintf("could not open %q: %v", path, err))
	}
	defer f.Close()

	reader := trace.NewReader(f, m.log.MalformedTraceLine)
	for {
		access, ok := reader.Next()
		if !ok {
			break
		}
		m.eng.ProcessAccess(access.Op, access.Address)
	}

	return fmt.Sprintf("Run of %s complete.\n\n%s", path, report.String(m.eng))
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("hybridmem interactive monitor"))
	b.WriteString("\n\n")
	b.WriteString(panelStyle.Render(m.body))
	b.WriteString("\n\n")

	if m.awaitInput {
		b.WriteString("Trace path: " + m.input.View())
	} else {
		b.WriteString(helpText)
	}
	b.WriteString("\n")

	return b.String()
}

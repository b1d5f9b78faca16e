// Package tui hosts a board of knobs in the terminal.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alkime/knobs/internal/tui/components/knobview"
	"github.com/alkime/knobs/internal/tui/style"
	"github.com/alkime/knobs/pkg/uictl"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	// knobs start below the title and a blank line
	boardTop = 2
	knobGap  = 2
)

// Config configures the board.
type Config struct {
	// Cancel is called when the user quits.
	Cancel context.CancelFunc
	Title  string
}

type model struct {
	config   Config
	keys     KeyMap
	knobs    []knobview.Model
	captured int
	status   string
}

// New creates the board model. Knobs are laid out left to right in the order
// given.
func New(config Config, knobs []knobview.Model) tea.Model {
	placed := make([]knobview.Model, len(knobs))

	x := 0
	for i, kv := range knobs {
		placed[i] = kv.WithOrigin(x, boardTop)
		x += kv.Width() + knobGap
	}

	if config.Title == "" {
		config.Title = "knobs"
	}

	return model{
		config:   config,
		keys:     DefaultKeyMap(),
		knobs:    placed,
		captured: -1,
		status:   "drag a knob with the mouse",
	}
}

func (m model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.knobs))
	for _, kv := range m.knobs {
		cmds = append(cmds, kv.Init())
	}

	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.ForceQuit), key.Matches(msg, m.keys.Quit):
			if m.config.Cancel != nil {
				m.config.Cancel()
			}

			return m, tea.Quit

		case key.Matches(msg, m.keys.Reset):
			accepted, cmd := m.reset()
			m.status = fmt.Sprintf("reset %d of %d knobs", accepted, len(m.knobs))

			return m, cmd
		}

	case tea.MouseMsg:
		return m.routeMouse(msg)

	case knobview.SetValueMsg:
		cmds := make([]tea.Cmd, 0, len(m.knobs))
		for i := range m.knobs {
			var cmd tea.Cmd
			m.knobs[i], cmd = m.knobs[i].Update(msg)
			cmds = append(cmds, cmd)
		}

		return m, tea.Batch(cmds...)

	case knobview.ChangedMsg:
		m.status = msg.Label + " → " + msg.Readout
		slog.Debug("knob changed",
			"knob", msg.Label,
			"value", msg.Change.Value,
			"previous", msg.Change.Previous,
			"source", msg.Change.Source.String())
	}

	return m, nil
}

// routeMouse sends a press to the knob under it and every later event to the
// knob that captured the pointer until it lets go.
func (m model) routeMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	target := m.captured

	if target < 0 {
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}

		for i, kv := range m.knobs {
			if kv.Contains(msg.X, msg.Y) {
				target = i
				break
			}
		}

		if target < 0 {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.knobs[target], cmd = m.knobs[target].Update(msg)

	if m.knobs[target].Dragging() {
		m.captured = target
	} else {
		m.captured = -1
	}

	return m, cmd
}

// reset pushes every knob's default back in as a host value.
func (m model) reset() (int, tea.Cmd) {
	var cmds []tea.Cmd

	dials := make([]uictl.SettableDial[float64], len(m.knobs))
	defaults := make([]float64, len(m.knobs))

	for i := range m.knobs {
		dials[i] = &boardDial{view: &m.knobs[i], cmds: &cmds}
		defaults[i] = m.knobs[i].Knob().Default()
	}

	accepted := uictl.ResetAll(dials, defaults)

	return accepted, tea.Batch(cmds...)
}

// boardDial sets one board knob through its view, collecting the ChangedMsg
// commands that result.
type boardDial struct {
	view *knobview.Model
	cmds *[]tea.Cmd
}

func (d *boardDial) Read() float64 { return d.view.Knob().Value() }

func (d *boardDial) Set(raw any) bool {
	var (
		cmd tea.Cmd
		ok  bool
	)

	*d.view, cmd, ok = d.view.SetValue(raw)
	if cmd != nil {
		*d.cmds = append(*d.cmds, cmd)
	}

	return ok
}

func (m model) View() string {
	var sb strings.Builder

	sb.WriteString(style.Title.Render(m.config.Title))
	sb.WriteString("\n\n")

	row := make([]string, 0, 2*len(m.knobs))
	for i, kv := range m.knobs {
		if i > 0 {
			row = append(row, strings.Repeat(" ", knobGap))
		}
		row = append(row, kv.View())
	}

	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
	sb.WriteString("\n\n")
	sb.WriteString(style.Subtitle.Render(m.status))
	sb.WriteString("\n")
	sb.WriteString(renderKeyHelp(m.keys.Reset, " "))
	sb.WriteString(renderKeyHelp(m.keys.Quit, " "))
	sb.WriteString(renderKeyHelp(m.keys.ForceQuit, "\n"))

	return sb.String()
}

func renderKeyHelp(keyBinding key.Binding, suffix ...string) string {
	s := style.Help.Render("[") + style.Key.Render(keyBinding.Help().Key) +
		style.Help.Render("] ") +
		style.Help.Render(keyBinding.Help().Desc)

	s += strings.Join(suffix, "")

	return s
}

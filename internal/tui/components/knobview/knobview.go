// Package knobview provides a TUI component for a rotary knob driven by the
// mouse.
package knobview

import (
	"math"
	"strings"

	"github.com/alkime/knobs/internal/knob"
	"github.com/alkime/knobs/internal/tui/style"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Terminal cells are roughly twice as tall as wide; dial geometry is done in
// units of one row, so a column is half a unit.
const cellAspect = 2.0

// ChangedMsg reports a value change of the knob with ID to the parent model.
type ChangedMsg struct {
	ID      int
	Label   string
	Readout string
	Change  knob.Change
}

// SetValueMsg asks the knob with ID to take a host-supplied value.
type SetValueMsg struct {
	ID    int
	Value any
}

// face is the terminal knob.Surface. It is shared by copies of Model.
type face struct {
	rotation float64
	readout  string
}

func (f *face) SetRotation(deg float64) { f.rotation = deg }
func (f *face) SetReadout(text string)  { f.readout = text }

// Builder constructs a knob with the given extra options, such as
// config.KnobSpec.Build.
type Builder func(extra ...knob.Option) (*knob.Knob, error)

// Model renders one knob and translates mouse events into pointer events.
type Model struct {
	id     int
	knob   *knob.Knob
	face   *face
	radius int

	originX, originY int
}

// New builds a knob with a terminal surface attached. radius is the dial
// radius in rows and is at least 2.
func New(id int, build Builder, radius int) (Model, error) {
	radius = max(radius, 2)
	f := &face{}

	k, err := build(knob.WithSurface(f))
	if err != nil {
		return Model{}, err
	}

	return Model{
		id:     id,
		knob:   k,
		face:   f,
		radius: radius,
	}, nil
}

// ID returns the identifier used in messages.
func (m Model) ID() int { return m.id }

// Knob returns the underlying knob.
func (m Model) Knob() *knob.Knob { return m.knob }

// Dragging reports whether a drag gesture owns this knob.
func (m Model) Dragging() bool { return m.knob.Dragging() }

// Width returns the rendered width in columns.
func (m Model) Width() int { return 4*m.radius + 1 }

// Height returns the rendered height in rows: label, dial, readout.
func (m Model) Height() int { return 2*m.radius + 3 }

// WithOrigin places the component's top-left corner at screen cell (x, y).
func (m Model) WithOrigin(x, y int) Model {
	m.originX = x
	m.originY = y

	return m
}

// Contains reports whether screen cell (x, y) is on the dial.
func (m Model) Contains(x, y int) bool {
	cx, cy := m.centerCell()
	dx := float64(x-cx) / cellAspect
	dy := float64(y - cy)

	return math.Hypot(dx, dy) <= float64(m.radius)+0.5
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles mouse and SetValueMsg messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		ev, ok := m.pointerEvent(msg)
		if !ok {
			return m, nil
		}

		prev := m.knob.Value()
		if m.knob.HandlePointer(m.center(), ev) {
			return m, m.changed(prev, knob.SourcePointer)
		}

	case SetValueMsg:
		if msg.ID != m.id {
			return m, nil
		}

		var cmd tea.Cmd
		m, cmd, _ = m.SetValue(msg.Value)

		return m, cmd
	}

	return m, nil
}

// SetValue pushes a host value into the knob the way SetValueMsg does and
// reports whether the knob accepted it. A change comes back as a ChangedMsg.
func (m Model) SetValue(raw any) (Model, tea.Cmd, bool) {
	prev := m.knob.Value()
	if !m.knob.Set(raw) {
		return m, nil, false
	}

	if m.knob.Value() == prev {
		return m, nil, true
	}

	return m, m.changed(prev, knob.SourceHost), true
}

// View renders the label, the dial and the readout.
func (m Model) View() string {
	w := m.Width()
	line := lipgloss.NewStyle().Width(w).MaxWidth(w).Align(lipgloss.Center)

	labelStyle := style.Label
	if m.knob.Dragging() {
		labelStyle = style.Active
	}

	var sb strings.Builder

	sb.WriteString(line.Render(labelStyle.Render(truncate(m.knob.Label(), w))))
	sb.WriteString("\n")
	sb.WriteString(m.renderDial())
	sb.WriteString("\n")

	if m.knob.ShowValue() {
		sb.WriteString(line.Render(style.Readout.Render(truncate(m.face.readout, w))))
	} else {
		sb.WriteString(strings.Repeat(" ", w))
	}

	return sb.String()
}

// pointerEvent maps a mouse message to a pointer event in dial units.
// Presses outside the dial are not ours.
func (m Model) pointerEvent(msg tea.MouseMsg) (knob.PointerEvent, bool) {
	ev := knob.PointerEvent{Pos: m.unitPoint(msg.X, msg.Y)}
	if msg.Button == tea.MouseButtonLeft {
		ev.Buttons = 1
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.Contains(msg.X, msg.Y) {
			return ev, false
		}
		ev.Kind = knob.PointerDown
	case tea.MouseActionMotion:
		ev.Kind = knob.PointerMove
	case tea.MouseActionRelease:
		ev.Kind = knob.PointerUp
	default:
		return ev, false
	}

	return ev, true
}

func (m Model) changed(prev float64, src knob.Source) tea.Cmd {
	msg := ChangedMsg{
		ID:      m.id,
		Label:   m.knob.Label(),
		Readout: m.knob.Readout(),
		Change:  knob.Change{Value: m.knob.Value(), Previous: prev, Source: src},
	}

	return func() tea.Msg { return msg }
}

// centerCell is the screen cell at the middle of the dial.
func (m Model) centerCell() (int, int) {
	return m.originX + 2*m.radius, m.originY + 1 + m.radius
}

func (m Model) center() knob.Point {
	return m.unitPoint(m.centerCell())
}

func (m Model) unitPoint(x, y int) knob.Point {
	return knob.Point{X: float64(x) / cellAspect, Y: float64(y)}
}

// renderDial draws the ring: filled arc up to the current rotation, an
// indicator at the rotation and the unfilled track after it.
func (m Model) renderDial() string {
	r := float64(m.radius)
	rotation := m.face.rotation
	indicator := m.indicatorCell()

	rows := make([]string, 0, 2*m.radius+1)
	for row := 0; row <= 2*m.radius; row++ {
		var sb strings.Builder

		for col := 0; col < m.Width(); col++ {
			p := knob.Point{X: float64(col-2*m.radius) / cellAspect, Y: float64(row - m.radius)}
			dist := math.Hypot(p.X, p.Y)

			switch {
			case row == m.radius && col == 2*m.radius:
				sb.WriteString(style.Muted.Render("+"))
			case math.Abs(dist-r) > 0.5:
				sb.WriteString(" ")
			case [2]int{row, col} == indicator:
				sb.WriteString(style.Title.Render("◆"))
			case rotation > 0 && knob.PointerAngle(knob.Point{}, p) <= rotation:
				sb.WriteString(style.Arc.Render("•"))
			default:
				sb.WriteString(style.Muted.Render("·"))
			}
		}

		rows = append(rows, sb.String())
	}

	return strings.Join(rows, "\n")
}

// indicatorCell returns the ring cell closest to the current rotation as
// (row, col).
func (m Model) indicatorCell() [2]int {
	r := float64(m.radius)
	target := math.Mod(m.face.rotation, 360)

	best := [2]int{0, 2 * m.radius}
	bestDiff := math.Inf(1)

	for row := 0; row <= 2*m.radius; row++ {
		for col := 0; col < m.Width(); col++ {
			p := knob.Point{X: float64(col-2*m.radius) / cellAspect, Y: float64(row - m.radius)}
			if math.Abs(math.Hypot(p.X, p.Y)-r) > 0.5 {
				continue
			}

			diff := math.Abs(knob.PointerAngle(knob.Point{}, p) - target)
			diff = math.Min(diff, 360-diff)

			if diff < bestDiff {
				best, bestDiff = [2]int{row, col}, diff
			}
		}
	}

	return best
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}

	return string(runes[:width])
}

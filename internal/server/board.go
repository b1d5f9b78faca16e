package server

import (
	"errors"
	"fmt"
	"sync"

	"github.com/alkime/knobs/internal/config"
	"github.com/alkime/knobs/internal/dialface"
	"github.com/alkime/knobs/internal/knob"
	"github.com/alkime/knobs/pkg/channels"
	"github.com/alkime/knobs/pkg/collections"
)

var (
	// ErrUnknownKnob is returned for a name that is not on the board.
	ErrUnknownKnob = errors.New("unknown knob")
	// ErrDragging is returned when a host value arrives during a drag.
	ErrDragging = errors.New("knob is being dragged")
)

// KnobState is the JSON view of one knob.
type KnobState struct {
	Name      string  `json:"name"`
	Label     string  `json:"label"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Step      float64 `json:"step"`
	Default   float64 `json:"default"`
	Value     float64 `json:"value"`
	Angle     float64 `json:"angle"`
	Readout   string  `json:"readout"`
	ShowValue bool    `json:"show_value"`
	State     string  `json:"state"`
}

// ChangeEvent is a value change as pushed to event stream clients.
type ChangeEvent struct {
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Previous float64 `json:"previous"`
	Source   string  `json:"source"`
	Readout  string  `json:"readout"`
}

// entry is one knob on the board. The knob is not safe for concurrent use,
// so every access goes through mu.
type entry struct {
	mu      sync.Mutex
	name    string
	knob    *knob.Knob
	face    *dialface.Face
	changes *channels.Broadcaster[ChangeEvent]
}

// Board holds the named knobs served over HTTP.
type Board struct {
	names   []string
	entries map[string]*entry
}

// NewBoard builds one knob per spec, each drawing onto a face of faceSize
// pixels.
func NewBoard(specs []config.KnobSpec, faceSize int) (*Board, error) {
	b := &Board{
		names:   make([]string, 0, len(specs)),
		entries: make(map[string]*entry, len(specs)),
	}

	for _, spec := range specs {
		if _, ok := b.entries[spec.Name]; ok {
			return nil, fmt.Errorf("duplicate knob name %q", spec.Name)
		}

		label := spec.Label
		if label == "" {
			label = spec.Name
		}

		face := dialface.New(faceSize, label)
		k, err := spec.Build(knob.WithSurface(face))
		if err != nil {
			return nil, fmt.Errorf("knob %q: %w", spec.Name, err)
		}

		e := &entry{
			name:    spec.Name,
			knob:    k,
			face:    face,
			changes: channels.NewBroadcaster[ChangeEvent](),
		}

		// listeners run with e.mu held by whoever changed the value
		k.OnChange(func(c knob.Change) {
			e.changes.Publish(ChangeEvent{
				Name:     e.name,
				Value:    c.Value,
				Previous: c.Previous,
				Source:   c.Source.String(),
				Readout:  knob.Format(k.Range(), c.Value),
			})
		})

		b.names = append(b.names, spec.Name)
		b.entries[spec.Name] = e
	}

	return b, nil
}

// Names returns the knob names in definition order.
func (b *Board) Names() []string {
	return append([]string(nil), b.names...)
}

// State returns the state of the named knob.
func (b *Board) State(name string) (KnobState, error) {
	e, err := b.get(name)
	if err != nil {
		return KnobState{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state(), nil
}

// States returns the state of every knob in definition order.
func (b *Board) States() []KnobState {
	return collections.Apply(b.names, func(name string) KnobState {
		e := b.entries[name]

		e.mu.Lock()
		defer e.mu.Unlock()

		return e.state()
	})
}

// Set pushes a host value of any type into the named knob. It fails with
// ErrDragging while a drag owns the knob; the returned state is current
// either way.
func (b *Board) Set(name string, raw any) (KnobState, bool, error) {
	e, err := b.get(name)
	if err != nil {
		return KnobState{}, false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.knob.Value()
	if !e.knob.Set(raw) {
		return e.state(), false, ErrDragging
	}

	return e.state(), e.knob.Value() != prev, nil
}

// Pointer feeds a pointer event, in face pixel coordinates, into the named
// knob. It reports the state before the event along with the new state.
func (b *Board) Pointer(name string, ev knob.PointerEvent) (knob.State, KnobState, bool, error) {
	e, err := b.get(name)
	if err != nil {
		return knob.Idle, KnobState{}, false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	before := e.knob.State()
	changed := e.knob.HandlePointer(e.face.Center(), ev)

	return before, e.state(), changed, nil
}

// FacePNG returns the rendered face of the named knob.
func (b *Board) FacePNG(name string) ([]byte, error) {
	e, err := b.get(name)
	if err != nil {
		return nil, err
	}

	return e.face.PNG()
}

// Subscribe streams the value changes of the named knob until the returned
// function is called.
func (b *Board) Subscribe(name string, buffer int) (<-chan ChangeEvent, func(), error) {
	e, err := b.get(name)
	if err != nil {
		return nil, nil, err
	}

	return e.changes.Subscribe(buffer)
}

// Close closes every knob and ends all subscriptions.
func (b *Board) Close() {
	for _, e := range b.entries {
		e.mu.Lock()
		e.knob.Close()
		e.mu.Unlock()

		e.changes.Close()
	}
}

func (b *Board) get(name string) (*entry, error) {
	e, ok := b.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKnob, name)
	}

	return e, nil
}

// state snapshots the knob. Caller holds e.mu.
func (e *entry) state() KnobState {
	r := e.knob.Range()

	return KnobState{
		Name:      e.name,
		Label:     e.knob.Label(),
		Min:       r.Min(),
		Max:       r.Max(),
		Step:      r.Step(),
		Default:   r.Default(),
		Value:     e.knob.Value(),
		Angle:     e.knob.Angle(),
		Readout:   e.knob.Readout(),
		ShowValue: e.knob.ShowValue(),
		State:     e.knob.State().String(),
	}
}

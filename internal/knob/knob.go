// Package knob implements the model of a rotary input control: a bounded,
// stepped range, the mapping between dial angle and value, the boundary that
// sanitizes host-supplied values, and the pointer state machine that drives
// the value during a drag.
//
// A Knob is not safe for concurrent use. Hosts deliver events from a single
// goroutine (the bubbletea loop) or serialize access themselves.
package knob

import (
	"fmt"
	"slices"

	"github.com/alkime/knobs/pkg/uictl"
)

// Bounds describes the range of a knob, without its default.
type Bounds struct {
	Min, Max, Step float64
}

// Source identifies what caused a value change.
type Source int

const (
	// SourcePointer is a change made by a drag gesture.
	SourcePointer Source = iota
	// SourceHost is a change pushed in by the embedding host.
	SourceHost
)

func (s Source) String() string {
	switch s {
	case SourcePointer:
		return "pointer"
	case SourceHost:
		return "host"
	default:
		return "unknown"
	}
}

// Change is the notification emitted once per value change.
type Change struct {
	Value    float64 `json:"value"`
	Previous float64 `json:"previous"`
	Source   Source  `json:"-"`
}

// Option configures a Knob at construction.
type Option func(*options)

type options struct {
	def       *float64
	showValue bool
	label     string
	surface   Surface
}

// WithDefault sets the initial value. It must lie within the bounds.
// Without it the default is the lower bound.
func WithDefault(v float64) Option {
	return func(o *options) {
		o.def = &v
	}
}

// WithShowValue toggles the numeric readout (on by default).
func WithShowValue(show bool) Option {
	return func(o *options) {
		o.showValue = show
	}
}

// WithLabel sets a display label.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithSurface attaches the visual surface the knob keeps in sync.
func WithSurface(s Surface) Option {
	return func(o *options) {
		o.surface = s
	}
}

type listener struct {
	id int
	fn func(Change)
}

// Knob is one rotary control instance.
type Knob struct {
	rng       Range
	showValue bool
	label     string

	value   float64
	state   State
	capture string

	render    *RenderSync
	listeners []listener
	nextID    int
	closed    bool
}

var _ uictl.SettableDial[float64] = (*Knob)(nil)

// New constructs a knob. It fails with an error wrapping ErrInvalidRange when
// the bounds are unusable or the default lies outside them.
func New(b Bounds, opts ...Option) (*Knob, error) {
	o := options{showValue: true}
	for _, opt := range opts {
		opt(&o)
	}

	def := b.Min
	if o.def != nil {
		def = *o.def
	}

	rng, err := NewRange(b.Min, b.Max, b.Step, def)
	if err != nil {
		return nil, fmt.Errorf("failed to create knob: %w", err)
	}

	k := &Knob{
		rng:       rng,
		showValue: o.showValue,
		label:     o.label,
		value:     rng.def,
		state:     Idle,
		render:    NewRenderSync(o.surface, rng, o.showValue),
	}
	k.render.Apply(k.value)

	return k, nil
}

// Value returns the current value.
func (k *Knob) Value() float64 { return k.value }

// Read implements uictl.Dial.
func (k *Knob) Read() float64 { return k.value }

// Range returns the knob's range.
func (k *Knob) Range() Range { return k.rng }

// Default returns the configured default value.
func (k *Knob) Default() float64 { return k.rng.def }

// ShowValue reports whether the readout is rendered.
func (k *Knob) ShowValue() bool { return k.showValue }

// Label returns the display label.
func (k *Knob) Label() string { return k.label }

// Angle returns the dial angle of the current value.
func (k *Knob) Angle() float64 {
	return ValueToAngle(k.rng, k.value)
}

// Readout returns the current value formatted for display.
func (k *Knob) Readout() string {
	return Format(k.rng, k.value)
}

// Set assigns a host-supplied value of any type through Transform.
// It is ignored, returning false, while a drag is in progress or after Close.
func (k *Knob) Set(raw any) bool {
	if k.closed || k.state == Dragging {
		return false
	}

	k.update(Transform(k, raw), SourceHost)

	return true
}

// OnChange registers fn for change notifications and returns a function that
// unregisters it. A listener may unregister itself from inside fn. After Close
// nothing is registered and the returned function does nothing.
func (k *Knob) OnChange(fn func(Change)) func() {
	if k.closed {
		return func() {}
	}

	k.nextID++
	id := k.nextID
	k.listeners = append(k.listeners, listener{id: id, fn: fn})

	return func() {
		// copy on write: update may be ranging over the current slice
		k.listeners = slices.DeleteFunc(slices.Clone(k.listeners), func(l listener) bool {
			return l.id == id
		})
	}
}

// Close releases pointer capture and every listener. The knob ignores all
// input afterwards.
func (k *Knob) Close() {
	k.release()
	k.listeners = nil
	k.closed = true
}

// update stores v and, if it differs from the current value, re-renders and
// notifies listeners. It reports whether the value changed.
func (k *Knob) update(v float64, src Source) bool {
	if v == k.value {
		return false
	}

	prev := k.value
	k.value = v
	k.render.Apply(v)

	change := Change{Value: v, Previous: prev, Source: src}
	for _, l := range k.listeners {
		l.fn(change)
	}

	return true
}

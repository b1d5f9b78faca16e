package knob

import "github.com/google/uuid"

// State is the interaction state of a knob.
type State int

const (
	// Idle accepts host-supplied values.
	Idle State = iota
	// Dragging owns the pointer; host-supplied values are ignored.
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// EventKind is the type of a pointer event.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	PointerCancel
)

func (e EventKind) String() string {
	switch e {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// ParseEventKind is the inverse of EventKind.String.
func ParseEventKind(s string) (EventKind, bool) {
	for _, e := range []EventKind{PointerDown, PointerMove, PointerUp, PointerCancel} {
		if e.String() == s {
			return e, true
		}
	}

	return 0, false
}

// PointerEvent is a single pointer event in the host's coordinate space.
// Buttons is the bitmask of pressed buttons; zero on a move means the button
// was released without an up event reaching us.
type PointerEvent struct {
	Kind    EventKind
	Pos     Point
	Buttons uint8
}

// State returns the interaction state.
func (k *Knob) State() State { return k.state }

// Dragging reports whether a drag gesture owns the knob.
func (k *Knob) Dragging() bool { return k.state == Dragging }

// Capture returns the pointer-capture token held during a drag.
func (k *Knob) Capture() (string, bool) {
	return k.capture, k.state == Dragging
}

// HandlePointer feeds one pointer event through the state machine.
// center is the dial center in the same coordinate space as ev.Pos.
// It reports whether the value changed.
//
//	Idle     --down-->        Dragging  (capture, track)
//	Dragging --move-->        Dragging  (track; no buttons = release)
//	Dragging --up|cancel-->   Idle      (release)
//
// Any other combination is ignored.
func (k *Knob) HandlePointer(center Point, ev PointerEvent) bool {
	if k.closed {
		return false
	}

	switch k.state {
	case Idle:
		if ev.Kind != PointerDown {
			return false
		}

		k.acquire()

		return k.track(center, ev.Pos)

	case Dragging:
		switch ev.Kind {
		case PointerMove:
			if ev.Buttons == 0 {
				k.release()
				return false
			}

			return k.track(center, ev.Pos)

		case PointerUp, PointerCancel:
			k.release()
		}
	}

	return false
}

func (k *Knob) track(center, pos Point) bool {
	deg := PointerAngle(center, pos)

	return k.update(AngleToValue(k.rng, deg), SourcePointer)
}

func (k *Knob) acquire() {
	k.state = Dragging
	k.capture = uuid.NewString()
}

func (k *Knob) release() {
	k.state = Idle
	k.capture = ""
}

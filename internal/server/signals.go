package server

import "github.com/zoobzio/capitan"

// Knob lifecycle signals.
var (
	// KnobValueChanged is emitted when a request changes a knob's value.
	KnobValueChanged = capitan.NewSignal(
		"knobs.knob.value.changed",
		"Knob value changed",
	)

	// KnobDragStarted is emitted when a pointer captures a knob.
	KnobDragStarted = capitan.NewSignal(
		"knobs.knob.drag.started",
		"Knob drag started",
	)

	// KnobDragEnded is emitted when a knob releases the pointer.
	KnobDragEnded = capitan.NewSignal(
		"knobs.knob.drag.ended",
		"Knob drag ended",
	)

	// KnobSetRejected is emitted when a host value arrives during a drag.
	KnobSetRejected = capitan.NewSignal(
		"knobs.knob.set.rejected",
		"Host value rejected during drag",
	)
)

// Field keys for knob events.
var (
	// KeyKnob is the knob name.
	KeyKnob = capitan.NewStringKey("knob")

	// KeyReadout is the formatted value after the change.
	KeyReadout = capitan.NewStringKey("readout")

	// KeySource is what caused the change, pointer or host.
	KeySource = capitan.NewStringKey("source")
)

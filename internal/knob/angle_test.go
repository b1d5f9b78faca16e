package knob_test

import (
	"testing"

	"github.com/alkime/knobs/internal/knob"
	"github.com/stretchr/testify/assert"
)

func TestValueToAngle(t *testing.T) {
	t.Parallel()

	r := mustRange(t, 0, 240, 5, 0)

	assert.Equal(t, 0.0, knob.ValueToAngle(r, 0))
	assert.Equal(t, 180.0, knob.ValueToAngle(r, 120))
	assert.Equal(t, 360.0, knob.ValueToAngle(r, 240))

	// zero value range has no span
	assert.Equal(t, 0.0, knob.ValueToAngle(knob.Range{}, 3))
}

func TestAngleToValue(t *testing.T) {
	t.Parallel()

	r := mustRange(t, 0, 240, 5, 0)

	tests := []struct {
		deg  float64
		want float64
	}{
		{deg: 0, want: 0},
		{deg: 90, want: 60},
		{deg: 180, want: 120},
		{deg: 270, want: 180},
		{deg: 359.9, want: 240},
		{deg: 360, want: 240},
		{deg: 450, want: 60},
		{deg: -90, want: 180},
		{deg: 1, want: 0},
		{deg: 4, want: 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, knob.AngleToValue(r, tt.deg), "deg=%v", tt.deg)
	}
}

func TestAngleValueRoundTrip(t *testing.T) {
	t.Parallel()

	ranges := []knob.Range{
		mustRange(t, 0, 240, 5, 0),
		mustRange(t, 0, 1, 0.1, 0),
		mustRange(t, -5, 5, 0.5, 0),
		mustRange(t, 0, 10, 3, 0),
		mustRange(t, 0.5, 2.5, 0.25, 1),
		mustRange(t, -1, 1, 0.01, 0),
		mustRange(t, 0, 100, 0.3, 0),
	}

	for _, r := range ranges {
		for v := range r.Values() {
			got := knob.AngleToValue(r, knob.ValueToAngle(r, v))
			assert.Equal(t, v, got, "range [%v,%v] step %v", r.Min(), r.Max(), r.Step())
		}
	}
}

func TestPointerAngle(t *testing.T) {
	t.Parallel()

	center := knob.Point{X: 10, Y: 10}

	tests := []struct {
		name string
		pos  knob.Point
		want float64
	}{
		{name: "up", pos: knob.Point{X: 10, Y: 0}, want: 0},
		{name: "right", pos: knob.Point{X: 20, Y: 10}, want: 90},
		{name: "down", pos: knob.Point{X: 10, Y: 20}, want: 180},
		{name: "left", pos: knob.Point{X: 0, Y: 10}, want: 270},
		{name: "up left", pos: knob.Point{X: 0, Y: 0}, want: 315},
		{name: "on center", pos: center, want: 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := knob.PointerAngle(center, tt.pos)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Less(t, got, 360.0)
		})
	}
}

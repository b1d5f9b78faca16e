package knob_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/alkime/knobs/internal/knob"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	numeric := []any{
		3, int8(3), int16(3), int32(3), int64(3),
		uint(3), uint8(3), uint16(3), uint32(3), uint64(3),
		float32(3), 3.0, json.Number("3"), knob.Numeric(3),
	}
	for _, raw := range numeric {
		v, ok := knob.Classify(raw).Float()
		assert.True(t, ok, "%T should be numeric", raw)
		assert.Equal(t, 3.0, v, "%T", raw)
	}

	other := []any{
		nil, "3", "not a number", true, []float64{3}, struct{}{},
		math.NaN(), math.Inf(1), math.Inf(-1), float32(math.Inf(1)),
		json.Number("three"), knob.Other(),
	}
	for _, raw := range other {
		_, ok := knob.Classify(raw).Float()
		assert.False(t, ok, "%T %v should not be numeric", raw, raw)
	}
}

func TestTransform(t *testing.T) {
	t.Parallel()

	k, err := knob.New(knob.Bounds{Min: 0, Max: 10, Step: 1}, knob.WithDefault(4))
	if !assert.NoError(t, err) {
		return
	}

	tests := []struct {
		name string
		raw  any
		want float64
	}{
		{name: "below min", raw: -5, want: 0},
		{name: "above max", raw: 11.2, want: 10},
		{name: "on lattice", raw: 7, want: 7},
		{name: "between points", raw: 2.2, want: 2},
		{name: "exact midpoint", raw: 2.5, want: 3},
		{name: "string", raw: "not a number", want: 4},
		{name: "numeric string", raw: "7", want: 4},
		{name: "nil", raw: nil, want: 4},
		{name: "nan", raw: math.NaN(), want: 4},
		{name: "infinity", raw: math.Inf(1), want: 4},
		{name: "negative infinity", raw: math.Inf(-1), want: 4},
		{name: "json number", raw: json.Number("8.9"), want: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, knob.Transform(k, tt.raw))
		})
	}
}

package knob

import (
	"errors"
	"fmt"
	"iter"
	"math"
)

// ErrInvalidRange is wrapped by every InvalidRangeError.
var ErrInvalidRange = errors.New("invalid range")

// InvalidRangeError reports a Range that cannot be constructed.
type InvalidRangeError struct {
	Min, Max, Step, Default float64
	Reason                  string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range [%g, %g] step %g default %g: %s",
		e.Min, e.Max, e.Step, e.Default, e.Reason)
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidRange).
func (e *InvalidRangeError) Unwrap() error {
	return ErrInvalidRange
}

// Range is an immutable bounded, evenly stepped set of values.
// The zero value is not usable; construct with NewRange.
type Range struct {
	min, max, step, def float64
	last                int // index of the last lattice point
}

// NewRange validates the bounds and returns the range.
// The default must lie inside [min, max]; it is never clamped. The number of
// lattice points must fit in an int.
func NewRange(minValue, maxValue, step, def float64) (Range, error) {
	fail := func(reason string) (Range, error) {
		return Range{}, &InvalidRangeError{
			Min: minValue, Max: maxValue, Step: step, Default: def,
			Reason: reason,
		}
	}

	for _, f := range []float64{minValue, maxValue, step, def} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fail("all fields must be finite")
		}
	}

	switch {
	case step <= 0:
		return fail("step must be positive")
	case minValue >= maxValue:
		return fail("min must be less than max")
	case def < minValue || def > maxValue:
		return fail("default outside [min, max]")
	}

	// Tolerate float noise so that e.g. [0, 1] step 0.1 has 11 points.
	span := math.Floor((maxValue-minValue)/step + 1e-9)
	if span >= float64(math.MaxInt) {
		return fail("too many lattice points")
	}
	last := int(span)

	return Range{
		min:  minValue,
		max:  maxValue,
		step: step,
		def:  def,
		last: last,
	}, nil
}

// Min returns the lower bound.
func (r Range) Min() float64 { return r.min }

// Max returns the upper bound.
func (r Range) Max() float64 { return r.max }

// Step returns the lattice spacing.
func (r Range) Step() float64 { return r.step }

// Default returns the configured default value.
func (r Range) Default() float64 { return r.def }

// Len returns the number of lattice points.
func (r Range) Len() int {
	if r.step <= 0 {
		return 0
	}

	return r.last + 1
}

// At returns the k-th lattice point, min + k*step, never above max.
// The product is computed directly rather than accumulated, so At(k) is the
// same float64 no matter how k was reached.
func (r Range) At(k int) float64 {
	return min(r.min+float64(k)*r.step, r.max)
}

// Values iterates the lattice from min upward.
func (r Range) Values() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for k := range r.Len() {
			if !yield(r.At(k)) {
				return
			}
		}
	}
}

// Contains reports whether v lies in [min, max].
func (r Range) Contains(v float64) bool {
	return v >= r.min && v <= r.max
}

// SnapToNearest maps x to the nearest lattice point, clamped to the range.
//
// Values at or beyond either bound return that bound. Ties between two lattice
// points round half away from zero (math.Round), i.e. upward inside the range
// since (x-min)/step is never negative there. NaN snaps to the default.
func (r Range) SnapToNearest(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return r.def
	case x <= r.min:
		return r.min
	case x >= r.max:
		return r.max
	}

	return r.At(r.nearestIndex(x))
}

// nearestIndex returns the lattice index closest to x, clamped to [0, last].
// The clamp happens before the conversion so that far out x cannot overflow.
func (r Range) nearestIndex(x float64) int {
	k := math.Round((x - r.min) / r.step)

	return int(math.Max(0, math.Min(k, float64(r.last))))
}

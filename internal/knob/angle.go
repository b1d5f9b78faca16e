package knob

import "math"

// fullTurn is one revolution in degrees.
const fullTurn = 360.0

// Point is a position in the host's coordinate space (y grows downward).
type Point struct {
	X, Y float64
}

// ValueToAngle maps v onto the dial, min at 0° and max at 360°.
// A degenerate range with max == min maps everything to 0°.
func ValueToAngle(r Range, v float64) float64 {
	span := r.max - r.min
	if span == 0 {
		return 0
	}

	return fullTurn * (v - r.min) / span
}

// AngleToValue maps an angle back onto the range and quantizes it to the
// step lattice using the same rounding as SnapToNearest.
//
// Angles are reduced modulo one turn, except that exactly 360° is kept as a
// full turn so that max survives a round trip through ValueToAngle.
func AngleToValue(r Range, deg float64) float64 {
	raw := r.min + turnFraction(deg)*(r.max-r.min)
	if r.step <= 0 {
		return clamp(raw, r.min, r.max)
	}

	return clamp(r.At(r.nearestIndex(raw)), r.min, r.max)
}

// PointerAngle returns the clockwise angle of pos around center in [0, 360),
// with straight up as 0°.
func PointerAngle(center, pos Point) float64 {
	dx := pos.X - center.X
	dy := pos.Y - center.Y

	deg := math.Atan2(dy, dx)*180/math.Pi + 90

	return normalizeDegrees(deg)
}

// turnFraction converts degrees to a fraction of a turn in [0, 1].
func turnFraction(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}

	if deg == fullTurn {
		return 1
	}

	return normalizeDegrees(deg) / fullTurn
}

// normalizeDegrees wraps deg into [0, 360).
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, fullTurn)
	if deg < 0 {
		deg += fullTurn
	}

	// -tiny + 360 rounds to 360 in float64
	if deg >= fullTurn {
		deg = 0
	}

	return deg
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

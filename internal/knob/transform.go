package knob

import (
	"encoding/json"
	"math"
)

// Candidate is a host-supplied value after classification: either a finite
// number or something else. It is the only form in which untyped input reaches
// the rest of the package.
type Candidate struct {
	value   float64
	numeric bool
}

// Numeric wraps a number. Non-finite values are classified as Other.
func Numeric(v float64) Candidate {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Other()
	}

	return Candidate{value: v, numeric: true}
}

// Other is a candidate that carries no usable number.
func Other() Candidate {
	return Candidate{}
}

// Float returns the number and whether the candidate is numeric.
func (c Candidate) Float() (float64, bool) {
	return c.value, c.numeric
}

// Classify inspects an arbitrary host value.
// Go integer and float kinds and json.Number are numeric; bool, strings, nil
// and everything else are not.
func Classify(raw any) Candidate {
	switch v := raw.(type) {
	case Candidate:
		return v
	case float64:
		return Numeric(v)
	case float32:
		return Numeric(float64(v))
	case int:
		return Numeric(float64(v))
	case int8:
		return Numeric(float64(v))
	case int16:
		return Numeric(float64(v))
	case int32:
		return Numeric(float64(v))
	case int64:
		return Numeric(float64(v))
	case uint:
		return Numeric(float64(v))
	case uint8:
		return Numeric(float64(v))
	case uint16:
		return Numeric(float64(v))
	case uint32:
		return Numeric(float64(v))
	case uint64:
		return Numeric(float64(v))
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return Other()
		}

		return Numeric(f)
	default:
		return Other()
	}
}

// Transform resolves a host value to a valid value of k's range: numbers snap
// to the nearest lattice point, anything else falls back to the default.
func Transform(k *Knob, raw any) float64 {
	return transform(k.rng, Classify(raw))
}

func transform(r Range, c Candidate) float64 {
	if v, ok := c.Float(); ok {
		return r.SnapToNearest(v)
	}

	return r.def
}

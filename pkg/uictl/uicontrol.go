// Package uictl describes UI controls by what a host can do with them,
// independent of how they are drawn.
package uictl

import "golang.org/x/exp/constraints"

type Number interface {
	constraints.Integer | constraints.Float
}

// Dial is a control that can read some value.
type Dial[N Number] interface {
	Read() N
}

// SettableDial is a Dial that also accepts values from the host.
// The raw value may be of any type; the control decides what to make of it
// and reports whether the assignment was accepted.
type SettableDial[N Number] interface {
	Dial[N]
	Set(raw any) bool
}

// ResetAll pushes each control's value from defaults back into it and
// returns how many assignments were accepted.
func ResetAll[N Number](dials []SettableDial[N], defaults []N) int {
	accepted := 0

	for i, d := range dials {
		if i >= len(defaults) {
			break
		}

		if d.Set(defaults[i]) {
			accepted++
		}
	}

	return accepted
}

package knob

import (
	"strconv"
	"strings"
)

// Surface is the visual side of a knob: an indicator that can be rotated and
// an optional textual readout. Hosts implement it; the knob never draws.
type Surface interface {
	SetRotation(deg float64)
	SetReadout(text string)
}

// RenderSync projects a value onto a Surface. It keeps only the last value it
// pushed so repeated applies of the same value are skipped.
type RenderSync struct {
	surface   Surface
	rng       Range
	showValue bool
	precision int

	last   float64
	synced bool
}

// NewRenderSync creates a projection for r onto s. s may be nil.
func NewRenderSync(s Surface, r Range, showValue bool) *RenderSync {
	return &RenderSync{
		surface:   s,
		rng:       r,
		showValue: showValue,
		precision: Precision(r),
	}
}

// Apply pushes v to the surface and reports whether anything was pushed.
func (rs *RenderSync) Apply(v float64) bool {
	if rs.surface == nil {
		return false
	}

	if rs.synced && rs.last == v {
		return false
	}

	rs.surface.SetRotation(ValueToAngle(rs.rng, v))
	if rs.showValue {
		rs.surface.SetReadout(formatFixed(v, rs.precision))
	}

	rs.last = v
	rs.synced = true

	return true
}

// Invalidate makes the next Apply push unconditionally.
func (rs *RenderSync) Invalidate() {
	rs.synced = false
}

// Format renders v with the display precision of r.
func Format(r Range, v float64) string {
	return formatFixed(v, Precision(r))
}

// Precision returns the number of decimals used to display values of r: the
// larger fractional digit count of step and min. Integer step and min give 0.
func Precision(r Range) int {
	return max(decimals(r.step), decimals(r.min))
}

func formatFixed(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	// "-0", "-0.00"
	if strings.HasPrefix(s, "-") && strings.Trim(s, "-0.") == "" {
		s = s[1:]
	}

	return s
}

// decimals counts the digits after the point in the shortest representation
// of f.
func decimals(f float64) int {
	s := strconv.FormatFloat(f, 'f', -1, 64)

	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}

	return len(s) - i - 1
}

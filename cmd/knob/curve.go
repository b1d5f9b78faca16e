package main

import (
	"fmt"

	"github.com/alkime/knobs/internal/knob"
	"github.com/guptarohit/asciigraph"
)

// CurveCmd plots the value a knob settles on for each dial angle, which shows
// the step quantization as a staircase.
type CurveCmd struct {
	Min     float64 `arg:"" help:"Lower bound"`
	Max     float64 `arg:"" help:"Upper bound"`
	Step    float64 `arg:"" help:"Step size"`
	Samples int     `flag:"" default:"72" help:"Number of angles sampled over one turn"`
	Height  int     `flag:"" default:"12" help:"Plot height in rows"`
}

// Run executes the curve command.
func (c *CurveCmd) Run() error {
	if c.Samples < 2 {
		return fmt.Errorf("samples must be at least 2, got %d", c.Samples)
	}

	r, err := knob.NewRange(c.Min, c.Max, c.Step, c.Min)
	if err != nil {
		return err
	}

	fmt.Println(asciigraph.Plot(curve(r, c.Samples),
		asciigraph.Height(c.Height),
		asciigraph.Precision(uint(knob.Precision(r))),
		asciigraph.Caption(fmt.Sprintf("value by angle, 0..360° over [%s, %s] step %s",
			knob.Format(r, r.Min()), knob.Format(r, r.Max()), knob.Format(r, r.Step()))),
	))

	return nil
}

// curve samples AngleToValue at samples evenly spaced angles from 0° to a
// full turn inclusive.
func curve(r knob.Range, samples int) []float64 {
	out := make([]float64, samples)
	for i := range out {
		deg := 360 * float64(i) / float64(samples-1)
		out[i] = knob.AngleToValue(r, deg)
	}

	return out
}

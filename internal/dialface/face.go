// Package dialface rasterizes a knob face to an image. A Face is a
// knob.Surface: the knob pushes rotation and readout into it, and the encoded
// PNG is cached until one of them changes.
package dialface

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/alkime/knobs/internal/knob"
	"github.com/fogleman/gg"
)

// Face is a square knob face of a fixed pixel size.
type Face struct {
	mu       sync.Mutex
	size     int
	label    string
	rotation float64
	readout  string
	encoded  []byte
}

var _ knob.Surface = (*Face)(nil)

// New creates a face of size×size pixels.
func New(size int, label string) *Face {
	return &Face{
		size:  size,
		label: label,
	}
}

// SetRotation implements knob.Surface.
func (f *Face) SetRotation(deg float64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.rotation = deg
	f.encoded = nil
}

// SetReadout implements knob.Surface.
func (f *Face) SetReadout(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.readout = text
	f.encoded = nil
}

// Size returns the edge length in pixels.
func (f *Face) Size() int { return f.size }

// Center returns the dial center in pixel coordinates, the frame pointer
// events against this face are measured in.
func (f *Face) Center() knob.Point {
	c := float64(f.size) / 2

	return knob.Point{X: c, Y: c}
}

// Rotation returns the last rotation pushed to the face.
func (f *Face) Rotation() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.rotation
}

// Readout returns the last readout pushed to the face.
func (f *Face) Readout() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.readout
}

// Image draws the face.
func (f *Face) Image() image.Image {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.draw().Image()
}

// PNG returns the encoded face, drawing it only if it changed since the last
// call.
func (f *Face) PNG() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.encoded != nil {
		return f.encoded, nil
	}

	var buf bytes.Buffer
	if err := f.draw().EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode face: %w", err)
	}

	f.encoded = buf.Bytes()

	return f.encoded, nil
}

// SavePNG writes the face to path.
func (f *Face) SavePNG(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.draw().SavePNG(path); err != nil {
		return fmt.Errorf("failed to save face: %w", err)
	}

	return nil
}

// draw renders the face. Caller holds f.mu.
func (f *Face) draw() *gg.Context {
	s := float64(f.size)
	c := s / 2
	r := s * 0.38
	track := s * 0.06

	dc := gg.NewContext(f.size, f.size)
	dc.SetRGB(0.11, 0.11, 0.14)
	dc.Clear()

	// body
	dc.SetRGB(0.2, 0.2, 0.25)
	dc.DrawCircle(c, c, r-track)
	dc.Fill()

	// full track, then the value arc clockwise from 12 o'clock
	dc.SetLineWidth(track)
	dc.SetRGB(0.3, 0.3, 0.36)
	dc.DrawCircle(c, c, r)
	dc.Stroke()

	start := gg.Radians(-90)
	end := gg.Radians(f.rotation - 90)
	if f.rotation > 0 {
		dc.SetRGB(0.39, 0.4, 0.95)
		dc.DrawArc(c, c, r, start, end)
		dc.Stroke()
	}

	// indicator
	dc.SetLineWidth(track / 2)
	dc.SetRGB(0.95, 0.3, 0.6)
	dc.DrawLine(c, c, c+(r-track)*math.Cos(end), c+(r-track)*math.Sin(end))
	dc.Stroke()
	dc.DrawCircle(c, c, track/2)
	dc.Fill()

	dc.SetRGB(0.9, 0.9, 0.9)
	if f.readout != "" {
		dc.DrawStringAnchored(f.readout, c, c+r/2, 0.5, 0.5)
	}

	if f.label != "" {
		dc.DrawStringAnchored(f.label, c, s-track, 0.5, 0.5)
	}

	return dc
}

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/alkime/knobs/internal/knob"
	"gopkg.in/yaml.v3"
)

// ErrNoKnobs is returned when a definitions file declares no knobs.
var ErrNoKnobs = errors.New("no knobs defined")

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// KnobSpec is one knob definition as written in a YAML file:
//
//	knobs:
//	  - name: volume
//	    min: 0
//	    max: 240
//	    step: 5
//	    default: 60
//	    show_value: true
type KnobSpec struct {
	Name      string   `yaml:"name"`
	Label     string   `yaml:"label,omitempty"`
	Min       float64  `yaml:"min"`
	Max       float64  `yaml:"max"`
	Step      float64  `yaml:"step"`
	Default   *float64 `yaml:"default,omitempty"`
	ShowValue *bool    `yaml:"show_value,omitempty"`
}

type knobsFile struct {
	Knobs []KnobSpec `yaml:"knobs"`
}

// DefaultKnobs is the set used when no definitions file is given.
func DefaultKnobs() []KnobSpec {
	volumeDefault := 60.0
	gainDefault := 0.5
	hidden := false

	return []KnobSpec{
		{Name: "volume", Label: "Volume", Min: 0, Max: 240, Step: 5, Default: &volumeDefault},
		{Name: "gain", Label: "Gain", Min: 0, Max: 1, Step: 0.1, Default: &gainDefault},
		{Name: "pan", Label: "Pan", Min: -1, Max: 1, Step: 0.25},
		{Name: "detune", Label: "Detune", Min: -12, Max: 12, Step: 1, ShowValue: &hidden},
	}
}

// LoadKnobs reads knob definitions from a YAML file and validates each one
// by building it.
func LoadKnobs(path string) ([]KnobSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knobs file: %w", err)
	}

	return ParseKnobs(data)
}

// ParseKnobs decodes and validates YAML knob definitions.
func ParseKnobs(data []byte) ([]KnobSpec, error) {
	var file knobsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse knobs file: %w", err)
	}

	if len(file.Knobs) == 0 {
		return nil, ErrNoKnobs
	}

	seen := make(map[string]bool, len(file.Knobs))
	for _, spec := range file.Knobs {
		if !namePattern.MatchString(spec.Name) {
			return nil, fmt.Errorf("invalid knob name %q", spec.Name)
		}

		if seen[spec.Name] {
			return nil, fmt.Errorf("duplicate knob name %q", spec.Name)
		}
		seen[spec.Name] = true

		if _, err := spec.Build(); err != nil {
			return nil, fmt.Errorf("knob %q: %w", spec.Name, err)
		}
	}

	return file.Knobs, nil
}

// Build constructs the knob described by s, with extra options appended.
func (s KnobSpec) Build(extra ...knob.Option) (*knob.Knob, error) {
	label := s.Label
	if label == "" {
		label = s.Name
	}

	opts := []knob.Option{knob.WithLabel(label)}
	if s.Default != nil {
		opts = append(opts, knob.WithDefault(*s.Default))
	}

	if s.ShowValue != nil {
		opts = append(opts, knob.WithShowValue(*s.ShowValue))
	}

	opts = append(opts, extra...)

	return knob.New(knob.Bounds{Min: s.Min, Max: s.Max, Step: s.Step}, opts...)
}

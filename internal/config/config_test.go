package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alkime/knobs/internal/config"
	"github.com/alkime/knobs/internal/knob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env here

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 256, cfg.FaceSize)
	assert.Equal(t, "./public", cfg.PublicDir)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("KNOBS_FILE", "knobs.yaml")
	t.Setenv("FACE_SIZE", "128")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "knobs.yaml", cfg.KnobsFile)
	assert.Equal(t, 128, cfg.FaceSize)
}

func TestLoadConfig_FaceSizeTooSmall(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FACE_SIZE", "8")

	_, err := config.LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FACE_SIZE")
}

func TestBuildCSP(t *testing.T) {
	assert.Contains(t, config.BuildCSP("strict"), "object-src 'none'")
	assert.Contains(t, config.BuildCSP("relaxed"), "'unsafe-inline'")
	assert.Contains(t, config.BuildCSP("relaxed"), "connect-src 'self'")
}

func TestParseKnobs(t *testing.T) {
	t.Parallel()

	data := []byte(`
knobs:
  - name: volume
    label: Volume
    min: 0
    max: 240
    step: 5
    default: 60
  - name: pan
    min: -1
    max: 1
    step: 0.25
    show_value: false
`)

	specs, err := config.ParseKnobs(data)
	require.NoError(t, err)
	require.Len(t, specs, 2)

	k, err := specs[0].Build()
	require.NoError(t, err)
	assert.Equal(t, "Volume", k.Label())
	assert.Equal(t, 60.0, k.Value())
	assert.True(t, k.ShowValue())

	k, err = specs[1].Build()
	require.NoError(t, err)
	assert.Equal(t, "pan", k.Label(), "label falls back to name")
	assert.Equal(t, -1.0, k.Value())
	assert.False(t, k.ShowValue())
}

func TestParseKnobs_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "empty", yaml: "knobs: []", wantErr: "no knobs"},
		{name: "malformed", yaml: "knobs: [", wantErr: "failed to parse"},
		{name: "bad name", yaml: "knobs:\n  - {name: 'Big Knob', min: 0, max: 1, step: 1}", wantErr: "invalid knob name"},
		{
			name:    "duplicate",
			yaml:    "knobs:\n  - {name: a, min: 0, max: 1, step: 1}\n  - {name: a, min: 0, max: 1, step: 1}",
			wantErr: "duplicate",
		},
		{name: "default out of range", yaml: "knobs:\n  - {name: a, min: 0, max: 10, step: 1, default: 15}", wantErr: "default outside"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.ParseKnobs([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := config.ParseKnobs([]byte("knobs:\n  - {name: a, min: 0, max: 10, step: 1, default: 15}"))
	assert.ErrorIs(t, err, knob.ErrInvalidRange)
}

func TestLoadKnobs(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "knobs.yaml")
	//nolint:gosec // Test file
	require.NoError(t, os.WriteFile(path, []byte("knobs:\n  - {name: a, min: 0, max: 1, step: 0.5}\n"), 0o644))

	specs, err := config.LoadKnobs(path)
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, 0.5, specs[0].Step)

	_, err = config.LoadKnobs(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultKnobs(t *testing.T) {
	t.Parallel()

	for _, spec := range config.DefaultKnobs() {
		_, err := spec.Build()
		assert.NoError(t, err, spec.Name)
	}
}

package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/alkime/knobs/internal/config"
	"github.com/alkime/knobs/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.SetupLogger(&config.Config{Env: "production", LogLevel: "info"}, &buf, logger.FormatJSON)

	log.Debug("hidden")
	log.Info("knob changed", "knob", "volume", "value", 120.0)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line), buf.String())
	assert.Equal(t, "knob changed", line["msg"])
	assert.Equal(t, "volume", line["knob"])
	assert.InDelta(t, 120.0, line["value"], 0)
}

func TestSetupLogger_TextDebug(t *testing.T) {
	var buf bytes.Buffer
	log := logger.SetupLogger(&config.Config{Env: "production", LogLevel: "debug"}, &buf, logger.FormatText)

	log.Debug("drag started", "knob", "gain")
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "knob=gain")
}

func TestSetupLogger_DevelopmentIsVerbose(t *testing.T) {
	var buf bytes.Buffer
	log := logger.SetupLogger(&config.Config{Env: "development"}, &buf, logger.FormatText)

	log.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

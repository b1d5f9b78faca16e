package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/alkime/knobs/internal/config"
)

// Format selects the slog handler.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// SetupLogger configures structured logging based on environment and sets it
// as the default logger. A nil w writes to stdout.
func SetupLogger(cfg *config.Config, w io.Writer, format Format) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}

	// Determine log level
	logLevel := slog.LevelInfo
	if cfg.Env == "development" {
		logLevel = slog.LevelDebug
	}
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}

	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if format == FormatText {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler)

	// Set as default logger
	slog.SetDefault(logger)

	return logger
}

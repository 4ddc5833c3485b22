// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New builds a logger for the given environment. Production emits JSON for
// log aggregation; anything else gets the human-readable text handler.
func New(w io.Writer, environment, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(environment, "production") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Init installs New(...) as the slog default and returns it.
func Init(w io.Writer, environment, level string) *slog.Logger {
	logger := New(w, environment, level)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps LOG_LEVEL strings to slog levels. Unknown values mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithConversion scopes a logger to a single conversion request.
func WithConversion(logger *slog.Logger, category, from, to string) *slog.Logger {
	return logger.With(
		"category", category,
		"from_unit", from,
		"to_unit", to,
	)
}

// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel overrides the configured log level when set.
const EnvLogLevel = "LOG_LEVEL"

// ParseLevel converts a level name into a slog.Level.
// Unknown values fall back to info.
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

// NewLogger builds a logger writing to w. When json is true the JSON handler
// is used, otherwise the text handler. Every record carries the module name
// and version.
func NewLogger(w io.Writer, name, version string, level slog.Level, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var h slog.Handler
	if json {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	return slog.New(h).With("module", name, "version", version)
}

// SetDefaultStructuredLogger installs a JSON logger on stderr as the slog
// default. The level comes from LOG_LEVEL (info when unset).
func SetDefaultStructuredLogger(name, version string) {
	slog.SetDefault(NewLogger(os.Stderr, name, version, ParseLevel(os.Getenv(EnvLogLevel)), true))
}

// SetDefaultCLILogger installs a logger for interactive use. debug forces the
// debug level; otherwise LOG_LEVEL applies.
func SetDefaultCLILogger(name, version string, debug, json bool) {
	level := ParseLevel(os.Getenv(EnvLogLevel))
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(NewLogger(os.Stderr, name, version, level, json))
}

package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New creates a JSON-formatted logger at info level with optional context extractors.
func New(extractors ...ContextExtractor) *slog.Logger {
	return NewWithLevel(slog.LevelInfo, extractors...)
}

// NewWithLevel creates a JSON-formatted stdout logger at the given level.
func NewWithLevel(level slog.Leveler, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewLogHandlerDecorator(jsonHandler(os.Stdout, level), extractors...))
}

// Component returns a child logger tagged with a component name so entries
// from the shell, the summariser and the HTTP host can be filtered apart.
func Component(l *slog.Logger, name string) *slog.Logger {
	if l == nil {
		l = NewNope()
	}
	return l.With(slog.String("component", name))
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
// Unknown values fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

func jsonHandler(w io.Writer, level slog.Leveler) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

// NewNope creates a no-op logger that discards all output.
// Use this as a default when logging is not configured.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

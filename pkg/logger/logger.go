package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var (
	// Default is the process-wide logger used by the package helpers
	Default *slog.Logger
)

func init() {
	Default = New("info", os.Stdout)
}

// ParseLevel maps a level name to a slog level. Unknown names fall back to info.
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

// New creates a JSON logger with the specified level and output
func New(level string, output io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// NewText creates a text logger (useful for local development)
func NewText(level string, output io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// NewWithFormat picks the handler by format name ("json" or "text").
func NewWithFormat(format, level string, output io.Writer) *slog.Logger {
	if strings.EqualFold(strings.TrimSpace(format), "text") {
		return NewText(level, output)
	}
	return New(level, output)
}

// SetDefault installs l as the package logger and as slog's process default,
// so code logging through either ends up in the same handler.
func SetDefault(l *slog.Logger) {
	Default = l
	slog.SetDefault(l)
}

// Debug, Info, Warn and Error log through Default with key/value args.

func Debug(msg string, args ...any) { Default.Debug(msg, args...) }

func Info(msg string, args ...any) { Default.Info(msg, args...) }

func Warn(msg string, args ...any) { Default.Warn(msg, args...) }

func Error(msg string, args ...any) { Default.Error(msg, args...) }

// With derives a logger from Default carrying args on every record.
func With(args ...any) *slog.Logger {
	return Default.With(args...)
}

// Component returns a logger tagged with the component name.
func Component(name string) *slog.Logger {
	return Default.With("component", name)
}

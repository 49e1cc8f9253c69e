package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Logging selects the level and handler format of the default logger.
type Logging struct {
	LevelStr string `json:"level,omitempty"`
	Format   string `json:"format,omitempty"`
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Conform to the slog.Leveler interface. Unknown levels fall back to warn
// so the CLI stays quiet by default.
func (l Logging) Level() slog.Level {
	switch strings.ToLower(l.LevelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Merge returns l with any non-empty field of override applied on top.
func (l Logging) Merge(override Logging) Logging {
	if override.LevelStr != "" {
		l.LevelStr = override.LevelStr
	}
	if override.Format != "" {
		l.Format = override.Format
	}
	return l
}

// NewLogger builds a logger writing to w as configured.
func (l Logging) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l}
	var handler slog.Handler
	switch strings.ToLower(l.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// SetDefaultLogger installs the configured logger as the slog default.
func (l Logging) SetDefaultLogger(w io.Writer) {
	slog.SetDefault(l.NewLogger(w))
	slog.Debug("logging: set default logger", "level", l.Level().String(), "format", l.Format)
}

// ValidateLogLevel reports whether level names a supported log level.
func ValidateLogLevel(level string) error {
	return oneOf("log level", level, logLevels)
}

// ValidateLogFormat reports whether format names a supported handler format.
func ValidateLogFormat(format string) error {
	return oneOf("log format", format, logFormats)
}

func oneOf(what, value string, allowed []string) error {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if normalized == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q (must be one of: %s)", what, value, strings.Join(allowed, ", "))
}

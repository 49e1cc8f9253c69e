package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestLogging_Level(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelWarn},
		{"chatty", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := (Logging{LevelStr: tt.level}).Level(); got != tt.want {
				t.Errorf("Level() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLogging_Merge(t *testing.T) {
	base := Logging{LevelStr: "info", Format: "json"}

	got := base.Merge(Logging{LevelStr: "debug"})
	if got.LevelStr != "debug" || got.Format != "json" {
		t.Errorf("Merge() = %+v, want level=debug format=json", got)
	}

	if got := base.Merge(Logging{}); got != base {
		t.Errorf("Merge(empty) = %+v, want %+v", got, base)
	}
}

func TestLogging_NewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := Logging{LevelStr: "info", Format: "json"}.NewLogger(&buf)

	logger.Debug("hidden")
	logger.Info("catalog: cache hit", "key", "locations")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "catalog: cache hit" {
		t.Errorf("msg = %v, want %q", entry["msg"], "catalog: cache hit")
	}
	if entry["key"] != "locations" {
		t.Errorf("key = %v, want %q", entry["key"], "locations")
	}
}

func TestLogging_NewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	logger := Logging{LevelStr: "debug"}.NewLogger(&buf)

	logger.Debug("resolve: selected", "hardware", "cx22")

	out := buf.String()
	if !strings.Contains(out, "level=DEBUG") || !strings.Contains(out, "hardware=cx22") {
		t.Errorf("unexpected text output: %q", out)
	}
}

func TestLogging_SetDefaultLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Logging{LevelStr: "warn"}.SetDefaultLogger(&buf)

	slog.Info("dropped")
	slog.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestValidateLogSettings(t *testing.T) {
	for _, level := range []string{"debug", "INFO", " warn ", "error"} {
		if err := ValidateLogLevel(level); err != nil {
			t.Errorf("ValidateLogLevel(%q) = %v", level, err)
		}
	}
	if err := ValidateLogLevel("trace"); err == nil {
		t.Error("expected error for level trace")
	}

	for _, format := range []string{"text", "JSON"} {
		if err := ValidateLogFormat(format); err != nil {
			t.Errorf("ValidateLogFormat(%q) = %v", format, err)
		}
	}
	if err := ValidateLogFormat("logfmt"); err == nil {
		t.Error("expected error for format logfmt")
	}
}

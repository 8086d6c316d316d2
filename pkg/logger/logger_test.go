package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewWithFormat(t *testing.T) {
	var buf bytes.Buffer
	NewWithFormat("text", "info", &buf).Info("friend added", "user_id", "alice")
	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Fatalf("expected text output, got %s", buf.String())
	}
	if !strings.Contains(buf.String(), "user_id=alice") {
		t.Fatalf("expected key=value pair in output, got %s", buf.String())
	}

	buf.Reset()
	NewWithFormat("json", "info", &buf).Info("friend added")
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		logFunc  func(string, ...any)
		logMsg   string
		expected bool
	}{
		{"Debug when debug level", "debug", Debug, "debug message", true},
		{"Debug when info level", "info", Debug, "debug message", false},
		{"Info when warn level", "warn", Info, "info message", false},
		{"Warn when info level", "info", Warn, "warn message", true},
		{"Error when error level", "error", Error, "error message", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetDefault(New(tt.logLevel, &buf))

			tt.logFunc(tt.logMsg)
			output := buf.String()

			if tt.expected && !strings.Contains(output, tt.logMsg) {
				t.Errorf("Expected log output to contain '%s', got: %s", tt.logMsg, output)
			}
			if !tt.expected && strings.Contains(output, tt.logMsg) {
				t.Errorf("Expected log output NOT to contain '%s', but it did: %s", tt.logMsg, output)
			}
		})
	}
}

func TestComponentAndWith(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(New("info", &buf))

	Component("graph").Info("snapshot taken")
	With("request_id", "123").Info("request received")

	var first map[string]any
	line := strings.SplitN(buf.String(), "\n", 2)[0]
	if err := json.Unmarshal([]byte(line), &first); err != nil {
		t.Fatalf("Failed to parse JSON log output: %v", err)
	}
	if first["component"] != "graph" {
		t.Errorf("expected component=graph, got %v", first["component"])
	}
	if !strings.Contains(buf.String(), `"request_id":"123"`) {
		t.Errorf("expected request_id attribute, got %s", buf.String())
	}
}

func TestSetDefaultRoutesSlog(t *testing.T) {
	prev, prevSlog := Default, slog.Default()
	defer func() {
		Default = prev
		slog.SetDefault(prevSlog)
	}()

	var buf bytes.Buffer
	SetDefault(New("info", &buf))
	slog.Info("via slog", "k", "v")
	Info("via package")

	out := buf.String()
	if !strings.Contains(out, `"msg":"via slog"`) || !strings.Contains(out, `"msg":"via package"`) {
		t.Fatalf("expected both records in shared handler, got %s", out)
	}
}

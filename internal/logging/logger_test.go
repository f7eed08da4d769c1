package logging

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func captureLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Logger{level: level, logger: log.New(&buf, "", 0)}, &buf
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	l, buf := captureLogger(LevelWarn)
	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("visible warn")
	l.Error("visible error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("low-level lines leaked:\n%s", out)
	}
	if !strings.Contains(out, "[WARN] visible warn") || !strings.Contains(out, "[ERROR] visible error") {
		t.Errorf("missing expected lines:\n%s", out)
	}
}

func TestComponentTag(t *testing.T) {
	t.Parallel()

	l, buf := captureLogger(LevelInfo)
	l.WithComponent("seed").Info("started")

	if !strings.Contains(buf.String(), "[INFO] seed: started") {
		t.Errorf("missing component tag:\n%s", buf.String())
	}
}

func TestStructuredFieldsSorted(t *testing.T) {
	t.Parallel()

	l, buf := captureLogger(LevelInfo)
	l.Infow("run.completed", map[string]any{
		"rows":   5,
		"object": "Account",
		"seed":   int64(42),
	})

	line := strings.TrimSpace(buf.String())
	want := "[INFO] run.completed object=Account rows=5 seed=42"
	if line != want {
		t.Errorf("line = %q, want %q", line, want)
	}
}

func TestNewLoggerLevelParsing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		if got := NewLogger(tt.in).level; got != tt.want {
			t.Errorf("NewLogger(%q).level = %d, want %d", tt.in, got, tt.want)
		}
	}
}

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("creates log file in dir", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested")

		logger, err := New(dir, LevelDebug)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		defer logger.Close()

		if _, err := os.Stat(filepath.Join(dir, FileName)); err != nil {
			t.Fatalf("log file was not created: %v", err)
		}
	})

	t.Run("writes to stderr when dir is empty", func(t *testing.T) {
		logger, err := New("", LevelInfo)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if logger.closer.file != nil {
			t.Fatalf("expected no file when dir is empty")
		}
		if err := logger.Close(); err != nil {
			t.Fatalf("Close on stderr logger: %v", err)
		}
	})
}

func TestLogger_WritesJSONWithCycle(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(dir, LevelDebug)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.WithCycle("cycle-1").Info("species loaded", "count", 2)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, data)
	}
	if entry["msg"] != "species loaded" || entry["cycle_id"] != "cycle-1" || entry["count"] != float64(2) {
		t.Fatalf("entry = %v", entry)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	cases := []struct {
		level   string
		debug   bool
		warn    bool
		errorOn bool
	}{
		{"debug", true, true, true},
		{"INFO", false, true, true},
		{"warn", false, true, true},
		{"ERROR", false, false, true},
		{"bogus", false, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithWriter(&buf, tc.level)
			logger.Debug("d")
			logger.Warn("w")
			logger.Error("e")
			out := buf.String()
			if got := strings.Contains(out, `"msg":"d"`); got != tc.debug {
				t.Fatalf("debug logged = %v, want %v", got, tc.debug)
			}
			if got := strings.Contains(out, `"msg":"w"`); got != tc.warn {
				t.Fatalf("warn logged = %v, want %v", got, tc.warn)
			}
			if got := strings.Contains(out, `"msg":"e"`); got != tc.errorOn {
				t.Fatalf("error logged = %v, want %v", got, tc.errorOn)
			}
		})
	}
}

func TestLogger_NilSafe(t *testing.T) {
	var l *Logger
	l.Info("ignored")
	if l.With("k", "v") != nil {
		t.Fatalf("With on nil logger should return nil")
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close on nil logger: %v", err)
	}
	NopLogger().Error("discarded")
}

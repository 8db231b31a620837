package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeLog(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holocron.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestTail_ReturnsNewestOldestFirst(t *testing.T) {
	var lines []string
	for i := 1; i <= 10; i++ {
		lines = append(lines, fmt.Sprintf(`{"level":"INFO","msg":"line %d"}`, i))
	}
	path := writeLog(t, lines...)

	tests := []struct {
		name  string
		n     int
		first string
		count int
	}{
		{"partial", 3, "line 8", 3},
		{"exact", 10, "line 1", 10},
		{"more than exists", 25, "line 1", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tail(path, tt.n)
			if err != nil {
				t.Fatalf("Tail returned error: %v", err)
			}
			if len(got) != tt.count {
				t.Fatalf("len = %d, want %d", len(got), tt.count)
			}
			if got[0].Message != tt.first {
				t.Fatalf("first = %q, want %q", got[0].Message, tt.first)
			}
			if got[len(got)-1].Message != "line 10" {
				t.Fatalf("last = %q, want line 10", got[len(got)-1].Message)
			}
		})
	}
}

func TestTail_NonPositiveLimit(t *testing.T) {
	path := writeLog(t, `{"msg":"x"}`)
	for _, n := range []int{0, -1} {
		got, err := Tail(path, n)
		if err != nil || got != nil {
			t.Fatalf("Tail(%d) = %v, %v; want nil, nil", n, got, err)
		}
	}
}

func TestTail_MissingFile(t *testing.T) {
	got, err := Tail(filepath.Join(t.TempDir(), "nope.log"), 5)
	if err != nil || got != nil {
		t.Fatalf("Tail(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestTail_SkipsBlankLines(t *testing.T) {
	path := writeLog(t, `{"msg":"a"}`, "", "   ", `{"msg":"b"}`)
	got, err := Tail(path, 5)
	if err != nil {
		t.Fatalf("Tail returned error: %v", err)
	}
	if len(got) != 2 || got[1].Message != "b" {
		t.Fatalf("entries = %+v, want a, b", got)
	}
}

func TestParse_SlogLine(t *testing.T) {
	line := `{"time":"2026-10-18T09:30:00.123456789Z","level":"ERROR","msg":"species load failed","cycle_id":"abc","error":"boom","count":2}`
	e := Parse(line)

	if e.Level != "ERROR" || e.Message != "species load failed" || e.CycleID != "abc" {
		t.Fatalf("entry = %+v", e)
	}
	if e.Time.IsZero() || e.Time.Minute() != 30 {
		t.Fatalf("time = %v", e.Time)
	}
	if e.Attrs["error"] != "boom" || e.Attrs["count"] != "2" {
		t.Fatalf("attrs = %v", e.Attrs)
	}
	if keys := e.AttrKeys(); len(keys) != 2 || keys[0] != "count" || keys[1] != "error" {
		t.Fatalf("AttrKeys = %v", keys)
	}
	if e.Raw != line {
		t.Fatalf("Raw not preserved")
	}
}

func TestParse_PlainText(t *testing.T) {
	e := Parse("not json")
	if e.Message != "not json" || e.Level != "" || e.Attrs != nil {
		t.Fatalf("entry = %+v", e)
	}
}

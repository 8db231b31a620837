package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"config", "prefs", "film-url", "plain", "theme", "timeout", "log-level"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Fatalf("flag --%s not registered", name)
		}
	}
	if cmd.Flags().ShorthandLookup("c") == nil {
		t.Fatalf("shorthand -c not registered")
	}
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("Execute accepted positional args")
	}
}

func TestRootCmd_RejectsBadTimeout(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--timeout", "soon"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "timeout") {
		t.Fatalf("Execute error = %v, want timeout parse error", err)
	}
}

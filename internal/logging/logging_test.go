package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"verbose", LevelVerbose, false},
		{"DEBUG", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestVerboseLevelName(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	Setup(&buf, LevelVerbose)
	Verbose("ignoring hint", "hint", 2)

	out := buf.String()
	if !strings.Contains(out, "level=VERBOSE") {
		t.Fatalf("output %q missing VERBOSE level", out)
	}
	if !strings.Contains(out, "hint=2") {
		t.Fatalf("output %q missing hint attr", out)
	}
}

func TestVerboseFilteredAtInfo(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	Setup(&buf, slog.LevelInfo)
	Verbose("dropped")
	if buf.Len() != 0 {
		t.Fatalf("verbose message leaked at info level: %q", buf.String())
	}
}

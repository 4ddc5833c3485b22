package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, "production", "info").Info("converted", "model", "gemini")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "converted" || entry["model"] != "gemini" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNew_DevelopmentWritesText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, "", "info").Info("converted")

	if !strings.Contains(buf.String(), "msg=converted") {
		t.Errorf("expected text handler output, got %q", buf.String())
	}
}

func TestNew_LevelFiltersDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, "", "warn").Info("hidden")

	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered at warn level, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestWithConversion_AddsAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	WithConversion(New(&buf, "", "info"), "Weight", "kg", "lbs").Info("x")

	out := buf.String()
	for _, want := range []string{"category=Weight", "from_unit=kg", "to_unit=lbs"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

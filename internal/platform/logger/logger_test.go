package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"nope":    Info,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q)=%v want %v", in, got, want)
		}
	}
}

func TestJSONOutputIncludesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Info, Format: FormatJSON, App: "vet-clinic", Output: &buf})

	log.With(map[string]any{"req": "r-1"}).Info("user deleted", map[string]any{
		"user_id": "u-1",
		"err":     errors.New("boom"),
		"":        "ignored",
	})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if entry["message"] != "user deleted" || entry["level"] != "info" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["app"] != "vet-clinic" || entry["req"] != "r-1" || entry["user_id"] != "u-1" {
		t.Fatalf("missing fields: %v", entry)
	}
	if entry["err"] != "boom" {
		t.Fatalf("error field: %v", entry["err"])
	}
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Warn, Format: FormatText, Output: &buf})

	log.Info("hidden", nil)
	log.Warn("shown", nil)

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output: %q", out)
	}
}

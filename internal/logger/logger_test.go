package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		"warn":    LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInitWithWriterJSON(t *testing.T) {
	prev := GetLogger()
	t.Cleanup(func() { globalLogger = prev })

	var buf bytes.Buffer
	if err := InitWithConfig(Config{Level: LevelWarn, Format: "json", Writer: &buf}); err != nil {
		t.Fatal(err)
	}

	Info("hidden")
	Warn("water goal reached", "user_id", "u1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatal(err)
	}
	if rec["msg"] != "water goal reached" || rec["user_id"] != "u1" {
		t.Fatalf("unexpected record %v", rec)
	}
}

func TestWithContextFallsBackToGlobal(t *testing.T) {
	if WithContext(context.Background()) != GetLogger() {
		t.Fatal("expected global logger")
	}
	l := Discard()
	ctx := IntoContext(context.Background(), l)
	if WithContext(ctx) != l {
		t.Fatal("expected scoped logger")
	}
}

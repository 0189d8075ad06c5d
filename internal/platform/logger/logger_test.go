package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"verbose": Info,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("JSON") != FormatJSON {
		t.Fatalf("expected json format")
	}
	if ParseFormat("") == FormatJSON {
		t.Fatalf("empty format must not be json")
	}
}

func TestZapLogger_FieldsAndWith(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core)).With(map[string]any{"user_id": "user-1"})

	log.Info("translation generated", map[string]any{"translation_id": "t-1", "": "dropped"})
	log.Error("model call failed", map[string]any{"error": errors.New("boom")})

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	first := entries[0].ContextMap()
	if first["user_id"] != "user-1" || first["translation_id"] != "t-1" {
		t.Fatalf("unexpected fields %v", first)
	}
	if _, ok := first[""]; ok {
		t.Fatalf("blank keys must be dropped")
	}

	second := entries[1]
	if second.Level != zapcore.ErrorLevel || second.ContextMap()["error"] != "boom" {
		t.Fatalf("unexpected error entry %+v", second.ContextMap())
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Info("ignored", nil)
	if log.With(nil) != log {
		t.Fatalf("With(nil) should return the same logger")
	}
}

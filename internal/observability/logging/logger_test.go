package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":    slog.LevelDebug,
		"  Warn ":  slog.LevelWarn,
		"WARNING":  slog.LevelWarn,
		"error":    slog.LevelError,
		"":         slog.LevelInfo,
		"verbose3": slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNewJSONLoggerInstallsDefault(t *testing.T) {
	logger := NewJSONLogger("api", "error")
	if logger == nil {
		t.Fatal("expected logger")
	}

	ctx := context.Background()
	if slog.Default().Enabled(ctx, slog.LevelInfo) {
		t.Fatal("expected default logger to filter below error")
	}
	if !slog.Default().Enabled(ctx, slog.LevelError) {
		t.Fatal("expected default logger to allow error")
	}
}

package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		if err := sonic.UnmarshalString(line, &entry); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

func TestLoggerWritesServiceFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Options{
		Level:          LevelInfo,
		Output:         &buf,
		ServiceName:    "live-match",
		ServiceVersion: "1.2.3",
		Environment:    "dev",
	})

	logger.Debug("hidden")
	logger.Named("sweeper").Info("swept", "games", 3, "err", errors.New("boom"))

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected one entry above debug level, got %d", len(lines))
	}
	entry := lines[0]
	if entry["service"] != "live-match" || entry["version"] != "1.2.3" || entry["env"] != "dev" {
		t.Fatalf("missing service fields: %v", entry)
	}
	if entry["logger"] != "sweeper" || entry["msg"] != "swept" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["games"] != float64(3) || entry["err"] != "boom" {
		t.Fatalf("unexpected fields: %v", entry)
	}
}

func TestLoggerContextAddsTraceFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Output: &buf})

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.WarnContext(ctx, "late", "odd")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected one entry, got %d", len(lines))
	}
	if lines[0]["trace_id"] != traceID.String() || lines[0]["span_id"] != spanID.String() {
		t.Fatalf("missing trace fields: %v", lines[0])
	}
	if _, ok := lines[0]["odd"]; !ok {
		t.Fatalf("dangling key must still be logged: %v", lines[0])
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("with on nil logger must return a logger")
	}
}

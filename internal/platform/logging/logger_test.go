package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	var out map[string]any
	if err := sonic.UnmarshalString(line, &out); err != nil {
		t.Fatalf("decode log line %q: %v", line, err)
	}
	return out
}

func TestLogger_KeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONTo(zapcore.AddSync(&buf), LevelInfo)

	logger.With("service", "quiniela").Info("submission stored", "sheet", "J10", "rows", 2, "error", errors.New("boom"))

	entry := decodeLine(t, &buf)
	if entry["msg"] != "submission stored" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["service"] != "quiniela" || entry["sheet"] != "J10" {
		t.Fatalf("missing fields: %v", entry)
	}
	if entry["error"] != "boom" {
		t.Fatalf("unexpected error field: %v", entry["error"])
	}
}

func TestLogger_ContextAddsTraceFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONTo(zapcore.AddSync(&buf), LevelDebug)

	traceID, _ := trace.TraceIDFromHex("0af7651916cd43dd8448eb211c80319c")
	spanID, _ := trace.SpanIDFromHex("b7ad6b7169203331")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.DebugContext(ctx, "reconcile header")

	entry := decodeLine(t, &buf)
	if entry["trace_id"] != traceID.String() || entry["span_id"] != spanID.String() {
		t.Fatalf("missing trace fields: %v", entry)
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONTo(zapcore.AddSync(&buf), LevelWarn)

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}
}

func TestLogger_NilSafe(t *testing.T) {
	var logger *Logger
	logger.Info("nil logger falls back to default")
	if err := logger.Sync(); err != nil {
		t.Fatalf("sync nil logger: %v", err)
	}
}

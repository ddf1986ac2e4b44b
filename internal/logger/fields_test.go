package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  scan_id  ", Value: "  scan-1  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	if fields[0].Key != "scan_id" || fields[0].String != "scan-1" {
		t.Fatalf("unexpected field: %+v", fields[0])
	}

	if empty := StringFields(); len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	WithFields(logger, zap.String("foo", "bar")).Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	if ctx := entries[0].ContextMap(); ctx["foo"] != "bar" {
		t.Fatalf("expected field to be bar, got %q", ctx["foo"])
	}

	enriched := WithFields(nil, zap.String("baz", "qux"))
	if enriched == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}
	enriched.Info("another log")
}

func TestScanFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	logger.Info("scan finished", ScanFields("scan-1", "", "job-9", "good", 72)...)

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx[FieldScanID] != "scan-1" || ctx[FieldJobID] != "job-9" || ctx[FieldVerdict] != "good" {
		t.Fatalf("unexpected context: %+v", ctx)
	}
	if _, ok := ctx[FieldResumeID]; ok {
		t.Fatalf("expected empty resume id to be omitted")
	}
	if ctx[FieldScore] != int64(72) {
		t.Fatalf("expected score 72, got %v", ctx[FieldScore])
	}
}

func TestWithCommonFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithCommonFields(zap.New(core), "gemini", "model-x").Info("test log")

	ctx := observed.All()[0].ContextMap()
	if ctx[FieldProvider] != "gemini" {
		t.Fatalf("expected provider field to be gemini, got %q", ctx[FieldProvider])
	}
	if ctx[FieldModel] != "model-x" {
		t.Fatalf("expected model field to be model-x, got %q", ctx[FieldModel])
	}

	if fields := CommonFields("", ""); len(fields) != 0 {
		t.Fatalf("expected empty fields, got %d", len(fields))
	}
}

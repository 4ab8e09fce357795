package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextFieldsAccumulate(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf})

	ctx := logg.WithRequestID(context.Background(), "req-1")
	ctx = logg.WithEnrollmentCode(ctx, "PL-1000")
	logg.Info(ctx, "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["request_id"] != "req-1" {
		t.Fatalf("expected request_id, got %v", entry["request_id"])
	}
	if entry["enrollment_code"] != "PL-1000" {
		t.Fatalf("expected enrollment_code, got %v", entry["enrollment_code"])
	}
	if entry["service"] != "test" {
		t.Fatalf("expected service field, got %v", entry["service"])
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("debug") != zerolog.DebugLevel {
		t.Fatalf("expected debug level")
	}
	if ParseLevel("") != zerolog.InfoLevel {
		t.Fatalf("expected info fallback for empty value")
	}
	if ParseLevel("bogus") != zerolog.InfoLevel {
		t.Fatalf("expected info fallback for unknown value")
	}
}

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"mythus/internal/services"
)

func TestConsoleFormatIncludesComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.With(FieldComponent, "scenes").Info("list loaded", "count", 12)

	line := buf.String()
	if !strings.Contains(line, "INFO scenes: list loaded") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "count=12") {
		t.Fatalf("missing attribute in console line: %q", line)
	}
}

func TestConsoleQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("saved", "title", "Night Shoot")

	if !strings.Contains(buf.String(), `title="Night Shoot"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestJSONFormatEmitsLowercaseLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Warn("upload slow", "elapsed_ms", 900)

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if payload["level"] != "warning" && payload["level"] != "warn" {
		t.Fatalf("unexpected level: %v", payload["level"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatal("expected ts key in JSON output")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("should be dropped")
	logger.Warn("should appear")

	if strings.Contains(buf.String(), "should be dropped") {
		t.Fatal("info record passed a warn-level logger")
	}
	if !strings.Contains(buf.String(), "should appear") {
		t.Fatal("warn record missing")
	}
}

func TestUnsupportedFormatRejected(t *testing.T) {
	if _, err := New(Options{Format: "logfmt"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextLiftsCorrelationFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := services.WithScreenplayID(context.Background(), "sp-42")
	ctx = services.WithSceneNumber(ctx, "17A")
	ctx = services.WithRequestID(ctx, "req-7")

	WithContext(ctx, logger).Info("breakdown saved")

	line := buf.String()
	for _, want := range []string{"screenplay_id=sp-42", "scene_number=17A", "correlation_id=req-7"} {
		if !strings.Contains(line, want) {
			t.Fatalf("missing %q in %q", want, line)
		}
	}
}

func TestWithContextNilLoggerIsSafe(t *testing.T) {
	logger := WithContext(context.Background(), nil)
	if logger == nil {
		t.Fatal("expected non-nil fallback logger")
	}
	logger.Info("discarded")
}

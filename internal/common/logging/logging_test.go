package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", DebugLevel},
		{"DEBUG", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"", InfoLevel},
		{"verbose", InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestLevelString(t *testing.T) {
	if DebugLevel.String() != "DEBUG" || ErrorLevel.String() != "ERROR" {
		t.Errorf("unexpected level strings: %s, %s", DebugLevel, ErrorLevel)
	}
}

func TestZapLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewZapLoggerWithOutput(InfoLevel, &buf)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	logger.Info("request completed", Field{Key: "status", Value: 200})

	out := buf.String()
	if !strings.Contains(out, "request completed") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "status") {
		t.Errorf("output missing field key: %q", out)
	}
	if !strings.Contains(out, "INFO") {
		t.Errorf("output missing level: %q", out)
	}
}

func TestZapLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewZapLoggerWithOutput(WarnLevel, &buf)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	logger.Debug("hidden")
	logger.Info("also hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("low-level messages leaked: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestZapLoggerError(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewZapLoggerWithOutput(ErrorLevel, &buf)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	logger.Error("operation failed", errors.New("boom"))

	out := buf.String()
	if !strings.Contains(out, "operation failed") || !strings.Contains(out, "boom") {
		t.Errorf("error output incomplete: %q", out)
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewZapLoggerWithOutput(InfoLevel, &buf)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	child := logger.WithFields(Field{Key: "session_id", Value: "s-1"})
	child.Info("attached")

	if out := buf.String(); !strings.Contains(out, "s-1") {
		t.Errorf("bound field missing: %q", out)
	}
}

func TestGlobalLogger(t *testing.T) {
	original := GetGlobalLogger()
	defer SetGlobalLogger(original)

	nop := NewNopLogger()
	SetGlobalLogger(nop)
	if GetGlobalLogger() != nop {
		t.Error("global logger was not replaced")
	}

	// Package-level helpers must not panic with the nop logger installed.
	Debug("d")
	Info("i")
	Warn("w")
	Error("e", errors.New("x"))
}

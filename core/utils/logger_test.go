package utils

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerRoutesThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLoggerFromZap(zap.New(core))
	l.Printf("REQ %s %s", "GET", "/incidents")
	l.Errorf("PANIC %v", "boom")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "REQ GET /incidents" || entries[0].Level != zapcore.InfoLevel {
		t.Fatalf("unexpected first entry %+v", entries[0].Entry)
	}
	if entries[1].Level != zapcore.ErrorLevel {
		t.Fatalf("expected error level, got %s", entries[1].Level)
	}
}

func TestNewLoggerWithOptionsRejectsBadInput(t *testing.T) {
	if _, err := NewLoggerWithOptions(LoggerOptions{Level: "loud"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if _, err := NewLoggerWithOptions(LoggerOptions{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if _, err := NewLoggerWithOptions(LoggerOptions{Level: "DEBUG", Format: "json"}); err != nil {
		t.Fatalf("expected json/debug to build: %v", err)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Printf("ignored")
	l.Errorf("ignored")
	if err := l.SetLevel("debug"); err != nil {
		t.Fatalf("nil logger set level: %v", err)
	}
}

package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLoggerWritesConsoleLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Info().Str("state", "running").Msg("Tray started")
	l.Warn().Err(errors.New("boom")).Msg("assert failed")

	out := buf.String()
	if !strings.Contains(out, "Tray started") {
		t.Errorf("output missing info message: %q", out)
	}
	if !strings.Contains(out, "state=running") {
		t.Errorf("output missing field: %q", out)
	}
	if !strings.Contains(out, "assert failed") || !strings.Contains(out, "boom") {
		t.Errorf("output missing warn message: %q", out)
	}
}

func TestComponentAddsField(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf).Component("power")

	l.Info().Msg("hello")

	if !strings.Contains(buf.String(), "component=power") {
		t.Errorf("expected component field, got %q", buf.String())
	}
}

func TestNewAppLoggerCreatesLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	l := NewAppLogger(dir)
	l.Info().Msg("written to file")
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file missing message: %q", string(data))
	}

	// Second close is a no-op
	if err := l.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestNewAppLoggerEmptyDir(t *testing.T) {
	l := NewAppLogger("")
	if l.file != nil {
		t.Error("expected no log file for empty directory")
	}
	if err := l.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	// Must not panic
	l.Info().Msg("discarded")
	l.Error().Int("n", 1).Msg("discarded")
	if err := l.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

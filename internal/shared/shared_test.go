package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("writes to the provided writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello", "key", "value")

		out := buf.String()
		if !strings.Contains(out, "hello") {
			t.Errorf("expected log output to contain message, got %q", out)
		}
		if !strings.Contains(out, "key") {
			t.Errorf("expected log output to contain key, got %q", out)
		}
	})

	t.Run("nil writer defaults to stderr without panicking", func(t *testing.T) {
		logger := NewLogger(nil)
		if logger == nil {
			t.Fatal("expected a logger")
		}
	})
}

func TestTeeReporter(t *testing.T) {
	t.Run("errors reach both console and file", func(t *testing.T) {
		var console bytes.Buffer
		logPath := filepath.Join(t.TempDir(), "logs.txt")

		tee, err := NewTeeReporter(NewLogger(&console), logPath)
		if err != nil {
			t.Fatalf("NewTeeReporter failed: %v", err)
		}

		tee.Error("something broke", "cause", "test")

		if !strings.Contains(console.String(), "something broke") {
			t.Error("expected error on console")
		}

		data, err := os.ReadFile(logPath)
		if err != nil {
			t.Fatalf("failed to read log file: %v", err)
		}
		if !strings.Contains(string(data), "something broke") {
			t.Error("expected error in log file")
		}
	})

	t.Run("info stays off the log file", func(t *testing.T) {
		var console bytes.Buffer
		logPath := filepath.Join(t.TempDir(), "logs.txt")

		tee, err := NewTeeReporter(NewLogger(&console), logPath)
		if err != nil {
			t.Fatalf("NewTeeReporter failed: %v", err)
		}

		tee.Info("routine detail")
		tee.Warn("minor issue")

		data, err := os.ReadFile(logPath)
		if err != nil {
			t.Fatalf("failed to read log file: %v", err)
		}
		if strings.Contains(string(data), "routine detail") || strings.Contains(string(data), "minor issue") {
			t.Errorf("expected only errors in log file, got %q", string(data))
		}
	})

	t.Run("unwritable log path fails", func(t *testing.T) {
		if _, err := NewTeeReporter(nil, filepath.Join(t.TempDir(), "missing", "dir", "logs.txt")); err == nil {
			t.Error("expected error for unwritable log path")
		}
	})
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty ids")
	}
	if a == b {
		t.Error("expected unique ids")
	}
}

func TestGenerateState(t *testing.T) {
	a, err := GenerateState()
	if err != nil {
		t.Fatalf("GenerateState failed: %v", err)
	}
	b, err := GenerateState()
	if err != nil {
		t.Fatalf("GenerateState failed: %v", err)
	}

	if len(a) != 32 {
		t.Errorf("expected 32 hex characters, got %d", len(a))
	}
	if a == b {
		t.Error("expected unique state values")
	}
}

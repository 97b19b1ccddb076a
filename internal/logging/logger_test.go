package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"autokit/internal/config"
	"autokit/internal/logging"
	"autokit/internal/services"
)

func TestConsoleLoggerFormatsToolAndComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := logging.New(logging.Options{Format: "console", Level: "info", Console: &buf, RunID: "run-1"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithTool(services.WithRunID(context.Background(), "run-1"), "organizer")
	logging.WithContext(ctx, logging.NewComponentLogger(logger, "mover")).Info("moved file", logging.String("name", "a b.txt"))

	line := buf.String()
	for _, fragment := range []string{"INFO", "[organizer]", "mover: moved file", `name="a b.txt"`} {
		if !strings.Contains(line, fragment) {
			t.Fatalf("expected %q in %q", fragment, line)
		}
	}
	if strings.Contains(line, "run-1") {
		t.Fatalf("expected run id to be omitted from console output, got %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", line)
	}
}

func TestConsoleLoggerFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := logging.New(logging.Options{Level: "warn", Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigWritesJSONFileWithRunID(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Logging.Level = "error"

	logger, closeLog, err := logging.NewFromConfig(&cfg, "run-42")
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	defer closeLog()
	logger.Error("send failed", logging.String("recipient", "a@example.com"))

	data, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "autokit.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", data, err)
	}
	if entry["run_id"] != "run-42" || entry["msg"] != "send failed" || entry["level"] != "error" {
		t.Fatalf("unexpected log entry: %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key in %v", entry)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("nothing")
	if logger.Enabled(context.Background(), 12) {
		t.Fatal("expected nop logger to be disabled")
	}
}

func TestCloseReleasesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autokit.log")
	logger, closeLog, err := logging.New(logging.Options{Level: "info", Console: io.Discard, FilePath: path})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("before close")
	if err := closeLog(); err != nil {
		t.Fatalf("close returned error: %v", err)
	}
	if err := closeLog(); err != nil {
		t.Fatalf("second close returned error: %v", err)
	}
	logger.Info("after close")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "before close") || strings.Contains(string(data), "after close") {
		t.Fatalf("unexpected log file content %q", data)
	}
}

func TestCloseWithoutFileIsNoop(t *testing.T) {
	_, closeLog, err := logging.New(logging.Options{Console: io.Discard})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := closeLog(); err != nil {
		t.Fatalf("close returned error: %v", err)
	}
}

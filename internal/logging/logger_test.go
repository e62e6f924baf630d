package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLoggingInit(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := Init(log.DebugLevel); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}
	defer Close()

	logDir, err := Dir()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}

	Info("Test info message", "key", "value")
	Debug("Test debug message", "count", 42)
	Warn("Test warning message", "source", "test")
	Error("Test error message", "error", "test error")

	files, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("Failed to read log directory: %v", err)
	}
	if len(files) != 1 || !strings.HasPrefix(files[0].Name(), "stageview-") {
		t.Errorf("unexpected log files: %v", files)
	}
	if filepath.Ext(files[0].Name()) != ".log" {
		t.Errorf("log file should end in .log: %s", files[0].Name())
	}
}

func TestUseLevelFilters(t *testing.T) {
	defer func() { Logger = nil }()

	var buf bytes.Buffer
	Use(&buf, log.InfoLevel)

	Debug("hidden")
	Info("shown", "k", "v")
	WithPrefix("sync").Warn("prefixed")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message should be filtered at info level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "k=v") {
		t.Errorf("missing info line: %q", out)
	}
	if !strings.Contains(out, "sync") {
		t.Errorf("missing prefix: %q", out)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	Logger = nil
	Info("dropped")
	Error("dropped")
	WithPrefix("x").Info("dropped")
}

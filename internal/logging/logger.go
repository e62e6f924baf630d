// Package logging writes the process log to a dated file. The terminal
// belongs to the stage display, so nothing is logged to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// Logger is the global logger instance. Nil until Init or Use.
	Logger *log.Logger

	// logFile is the file handle for the log file
	logFile *os.File
)

// Dir returns the log directory, ~/.stageview/logs.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".stageview", "logs"), nil
}

// Init opens today's log file and installs the global logger.
func Init(level log.Level) error {
	logDir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFileName := fmt.Sprintf("stageview-%s.log", time.Now().Format("2006-01-02"))
	logPath := filepath.Join(logDir, logFileName)

	logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	Use(logFile, level)
	Logger.Info("stageview started", "version", Version)
	return nil
}

// Use installs a logger writing to w. Init calls it with the log file;
// the once command points it at stderr.
func Use(w io.Writer, level log.Level) {
	Logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
	})
}

// Version is reported in the startup line.
const Version = "0.2.0"

// Close closes the log file
func Close() {
	if Logger != nil {
		Logger.Info("stageview shutting down")
	}
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// WithPrefix returns a logger with a prefix. Returns a discarding logger
// when logging has not been initialised, so callers never nil-check.
func WithPrefix(prefix string) *log.Logger {
	if Logger != nil {
		return Logger.WithPrefix(prefix)
	}
	return log.New(io.Discard)
}

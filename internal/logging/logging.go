package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// Dir returns ~/.kodo/logs
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".kodo", "logs"), nil
}

// Init initializes the logging system, writing logs to ~/.kodo/logs/kodo.log
// Uses text format for human readability.
func Init(level slog.Leveler) error {
	logDir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	// Open log file in append mode
	logPath := filepath.Join(logDir, "kodo.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	Setup(file, level)
	return nil
}

// Setup points the default slog logger and the standard log package at w
func Setup(w io.Writer, level slog.Leveler) *slog.Logger {
	// Create text handler (human readable)
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	// Redirect standard log package output (gin, sqlite driver) to the same place
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags) // Include timestamp

	return Logger
}

package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var (
	// Logger is the global slog logger instance. It falls back to the slog
	// default until Init is called.
	Logger = slog.Default()
)

// ParseLevel maps a level name to a slog level. Unknown names are info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitWriter initializes the global logger writing JSON to w. Commands pass
// stderr so stdout stays free for their output. The LOG_LEVEL environment
// variable overrides the configured level.
func InitWriter(w io.Writer, level string) {
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}
	if level == "" {
		level = "info"
	}

	// JSON handler for structured logging
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	Logger.Debug("Logger initialized", "level", level)
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// Package logger configures log/slog for the application: JSON output with
// source locations, suitable for log aggregation.
package logger

import (
	"log/slog"
	"os"
)

// Setup initializes the global slog logger at the given level. Valid levels
// are "debug", "info", "warn" and "error"; anything else falls back to info.
func Setup(level string) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     parseLevel(level),
	})
	slog.SetDefault(slog.New(handler))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

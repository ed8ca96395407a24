package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/viant/fbp"
)

// setupLogger logs text to stderr; stdout is left to WriteStdOut
func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler).With("service", appName, "version", fbp.Version)
}

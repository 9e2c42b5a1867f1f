// Package logger the default slog logger.
package logger

import (
	"log/slog"
	"os"
)

var level = new(slog.LevelVar)

func init() {
	// stdout carries the shortened URL, diagnostics go to stderr
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// SetDebug enables the debug level on the default logger.
func SetDebug() {
	level.Set(slog.LevelDebug)
}

// Debug calls Logger.Debug on the default logger.
func Debug(msg string, args ...any) {
	slog.Debug(msg, args...)
}

// Info calls Logger.Info on the default logger.
func Info(msg string, args ...any) {
	slog.Info(msg, args...)
}

// Warn calls Logger.Warn on the default logger.
func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}

// Error calls Logger.Error on the default logger.
func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}

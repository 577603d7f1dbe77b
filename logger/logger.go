// Package logger provides the leveled logger shared by the processor and the CLI.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// LogLevel defines the logging verbosity
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
	LogLevelNone  LogLevel = "none"
)

// SlogLevel maps the level onto slog. Unknown values map to info.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Logger is satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NewDefaultLogger logs at info level to stderr.
func NewDefaultLogger() Logger {
	return NewLogger(LogLevelInfo, os.Stderr)
}

// NewLogger creates a text logger writing to w. LogLevelNone discards everything.
func NewLogger(level LogLevel, w io.Writer) *slog.Logger {
	if level == LogLevelNone {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level.SlogLevel()}))
}

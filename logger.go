package memlock

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with memlock-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogAllocate logs an allocate operation. Sizes are logged, contents never.
func (l *Logger) LogAllocate(size int, err error) {
	if err != nil {
		l.Error("allocate failed",
			"size", size,
			"error", err,
		)
	} else {
		l.Debug("allocate completed",
			"size", size,
		)
	}
}

// LogDeallocate logs a deallocate operation.
func (l *Logger) LogDeallocate(size int, err error) {
	if err != nil {
		l.Error("deallocate failed",
			"size", size,
			"error", err,
		)
	} else {
		l.Debug("deallocate completed",
			"size", size,
		)
	}
}

package normpack

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/normpack/verify"
)

// Logger wraps slog.Logger with normpack-specific context.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithComponent adds a component field to the logger.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("component", name),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogVerify logs the outcome of a verification run.
func (l *Logger) LogVerify(ctx context.Context, r *verify.Report) {
	if r.Failed > 0 {
		l.WarnContext(ctx, "verification completed with failures",
			"run_id", r.RunID.String(),
			"total", r.Total,
			"failed", r.Failed,
			"max_error", r.MaxError,
		)
	} else {
		l.InfoContext(ctx, "verification completed",
			"run_id", r.RunID.String(),
			"total", r.Total,
			"max_error", r.MaxError,
		)
	}
}

// LogStream logs a stream encode or decode.
func (l *Logger) LogStream(ctx context.Context, op string, count, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "stream "+op+" failed",
			"bytes", bytes,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "stream "+op+" completed",
			"count", count,
			"bytes", bytes,
		)
	}
}

// LogArchive logs an archive operation on a named stream.
func (l *Logger) LogArchive(ctx context.Context, op, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "archive "+op+" failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "archive "+op+" completed",
			"name", name,
		)
	}
}

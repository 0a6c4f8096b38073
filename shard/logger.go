package shard

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with shard-specific context. Soft failures
// seen by Dispatch (missing or tombstoned hop targets, program invariant
// violations) are logged through here rather than returned as Go errors
// across Dispatch, per SPEC_FULL.md §7. C2 per-op errors are not logged
// here; namemap.Client logs those through its own *slog.Logger.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler. If handler is nil,
// it defaults to a text handler writing to stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs at the
// given minimum level.
func NewJSONLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // unreachable
	}))}
}

// WithShard adds a shard_id field to the logger.
func (l *Logger) WithShard(shardID uint64) *Logger {
	return &Logger{Logger: l.Logger.With("shard_id", shardID)}
}

// WithRequest adds a request_id field to the logger.
func (l *Logger) WithRequest(requestID uint64) *Logger {
	return &Logger{Logger: l.Logger.With("request_id", requestID)}
}

// LogDispatch logs the outcome of a single Dispatch call. Callers
// scope l with WithRequest beforehand so request_id is attached once
// rather than passed through every log call.
func (l *Logger) LogDispatch(ctx context.Context, handle uint64, hops int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dispatch invariant violation",
			"handle", handle,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "dispatch completed",
		"handle", handle,
		"hops", hops,
	)
}

// LogMissingNode logs the soft "hop target deleted or never existed on
// this shard" case — not a Go error, per §7.
func (l *Logger) LogMissingNode(ctx context.Context, handle uint64) {
	l.DebugContext(ctx, "hop target missing, treating as deleted",
		"handle", handle,
	)
}

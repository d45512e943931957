package kmeans

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with clustering-specific helpers.
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
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
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

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// LogTrain logs the end of a training run.
func (l *Logger) LogTrain(ctx context.Context, k, iterations int, state State, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "training failed",
			"k", k,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "training completed",
			"k", k,
			"iterations", iterations,
			"state", state.String(),
			"duration", duration,
		)
	}
}

// LogIteration logs one assignment/update round.
func (l *Logger) LogIteration(ctx context.Context, iteration, changed, emptyClusters int, inertia float64) {
	if emptyClusters > 0 {
		l.WarnContext(ctx, "iteration left clusters empty",
			"iteration", iteration,
			"changed", changed,
			"empty_clusters", emptyClusters,
			"inertia", inertia,
		)
	} else {
		l.DebugContext(ctx, "iteration completed",
			"iteration", iteration,
			"changed", changed,
			"inertia", inertia,
		)
	}
}

// LogPredict logs an inference call.
func (l *Logger) LogPredict(ctx context.Context, points int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "predict failed",
			"points", points,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "predict completed",
			"points", points,
		)
	}
}

// LogEvaluate logs an evaluation.
func (l *Logger) LogEvaluate(ctx context.Context, nmi, ami float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "evaluation failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "evaluation completed",
			"nmi", nmi,
			"ami", ami,
		)
	}
}

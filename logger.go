package pcstgo

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/pcstgo/graph"
)

// Logger wraps slog.Logger with pcstgo-specific helpers.
// Logging is observational only: results are bit-identical at every
// verbosity level.
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
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogAssemble logs the outcome of graph assembly.
func (l *Logger) LogAssemble(ctx context.Context, stats graph.Stats, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "assembly failed",
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "assembly completed",
		"nodes", stats.Nodes,
		"edges", stats.Edges,
		"prizes_applied", stats.PrizesApplied,
		"prizes_skipped", stats.PrizesSkipped,
		"duration", duration,
	)
}

// LogSolve logs the outcome of a solver invocation.
func (l *Logger) LogSolve(ctx context.Context, pruning string, clusters, selectedEdges int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "solve failed",
			"pruning", pruning,
			"clusters", clusters,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "solve completed",
		"pruning", pruning,
		"clusters", clusters,
		"selected_edges", selectedEdges,
		"duration", duration,
	)
}

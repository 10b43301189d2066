// Package resource bounds what concurrent runs may demand from shared
// collaborators: how many solver invocations run at once, and how fast rows
// are pulled from the query engine.
//
// A nil *Limiter is valid and enforces nothing, so callers never need to
// branch on whether limits are configured.
package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxConcurrentSolves caps how many solver invocations run at once.
	// If 0, defaults to 1.
	MaxConcurrentSolves int64

	// RowsPerSecond throttles row consumption from the query collaborator.
	// If 0, unlimited.
	RowsPerSecond float64
}

// Limiter gates concurrent solves and row throughput.
type Limiter struct {
	cfg Config

	solveSem   *semaphore.Weighted
	rowLimiter *rate.Limiter

	inFlight atomic.Int64
}

// NewLimiter creates a limiter for the given limits.
func NewLimiter(cfg Config) *Limiter {
	if cfg.MaxConcurrentSolves <= 0 {
		cfg.MaxConcurrentSolves = 1
	}

	l := &Limiter{
		cfg:      cfg,
		solveSem: semaphore.NewWeighted(cfg.MaxConcurrentSolves),
	}
	if cfg.RowsPerSecond > 0 {
		// Burst of one second's worth keeps steady-state throughput at the
		// configured rate without stalling small result sets.
		burst := int(cfg.RowsPerSecond)
		if burst < 1 {
			burst = 1
		}
		l.rowLimiter = rate.NewLimiter(rate.Limit(cfg.RowsPerSecond), burst)
	}
	return l
}

// AcquireSolve reserves a solve slot, blocking until one is free or ctx is
// canceled.
func (l *Limiter) AcquireSolve(ctx context.Context) error {
	if l == nil {
		return nil
	}
	if err := l.solveSem.Acquire(ctx, 1); err != nil {
		return err
	}
	l.inFlight.Add(1)
	return nil
}

// ReleaseSolve releases a solve slot.
func (l *Limiter) ReleaseSolve() {
	if l == nil {
		return
	}
	l.inFlight.Add(-1)
	l.solveSem.Release(1)
}

// InFlight returns the number of currently reserved solve slots.
func (l *Limiter) InFlight() int64 {
	if l == nil {
		return 0
	}
	return l.inFlight.Load()
}

// WaitRow waits until the row rate limit allows one more row.
func (l *Limiter) WaitRow(ctx context.Context) error {
	if l == nil || l.rowLimiter == nil {
		return nil
	}
	return l.rowLimiter.Wait(ctx)
}

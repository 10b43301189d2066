package pcstgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus. Metrics are observational only and never affect results.
type MetricsCollector interface {
	// RecordAssemble is called after graph assembly.
	// nodes/edges describe the assembled graph; err is nil on success.
	RecordAssemble(nodes, edges int, duration time.Duration, err error)

	// RecordSolve is called after each solver invocation.
	// selectedEdges is the size of the selection; err is nil on success.
	RecordSolve(selectedEdges int, duration time.Duration, err error)

	// RecordDense is called after each dense pass-through solve.
	RecordDense(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAssemble(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordSolve(int, time.Duration, error)        {}
func (NoopMetricsCollector) RecordDense(time.Duration, error)             {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AssembleCount      atomic.Int64
	AssembleErrors     atomic.Int64
	AssembleTotalNanos atomic.Int64
	SolveCount         atomic.Int64
	SolveErrors        atomic.Int64
	SolveTotalNanos    atomic.Int64
	SelectedEdges      atomic.Int64
	DenseCount         atomic.Int64
	DenseErrors        atomic.Int64
}

// RecordAssemble implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAssemble(nodes, edges int, duration time.Duration, err error) {
	b.AssembleCount.Add(1)
	b.AssembleTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AssembleErrors.Add(1)
	}
}

// RecordSolve implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSolve(selectedEdges int, duration time.Duration, err error) {
	b.SolveCount.Add(1)
	b.SolveTotalNanos.Add(duration.Nanoseconds())
	b.SelectedEdges.Add(int64(selectedEdges))
	if err != nil {
		b.SolveErrors.Add(1)
	}
}

// RecordDense implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDense(duration time.Duration, err error) {
	b.DenseCount.Add(1)
	if err != nil {
		b.DenseErrors.Add(1)
	}
}

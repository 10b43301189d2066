// Package stream exposes a completed solve as a pull-based row cursor.
//
// The cursor is the classic eager-then-stream iterator: nothing happens
// until the first pull, which runs assembly, root resolution and the solver
// invocation exactly once; every later pull is a cheap array lookup that
// translates one selected edge back to external identifiers.
package stream

import (
	"context"
	"iter"

	"github.com/hupe1980/pcstgo/graph"
	"github.com/hupe1980/pcstgo/model"
	"github.com/hupe1980/pcstgo/solver"
)

// State is the cursor lifecycle state.
type State uint8

const (
	// StateUninitialized means no pull has happened yet.
	StateUninitialized State = iota
	// StateStreaming means the solve succeeded and rows remain.
	StateStreaming
	// StateExhausted means all rows were delivered and resources released.
	StateExhausted
	// StateFailed means assembly, resolution or invocation failed.
	// Terminal; no rows were or will be produced.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateStreaming:
		return "streaming"
	case StateExhausted:
		return "exhausted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RunFunc performs one complete solve: assembly, root resolution and solver
// invocation. It is called exactly once, on the first pull.
type RunFunc func(ctx context.Context) (*graph.Graph, solver.Selection, error)

// Cursor streams the rows of one solve. It owns the registry, edge list and
// selection it caches between pulls and releases them exactly once, on entry
// to Exhausted or Failed (or on Close).
//
// A Cursor is single-threaded: it must not be shared between goroutines.
type Cursor struct {
	run   RunFunc
	state State

	g     *graph.Graph
	sel   solver.Selection
	pos   int
	total int

	stats graph.Stats
	err   error
}

// New creates a cursor over a pending run.
func New(run RunFunc) *Cursor {
	return &Cursor{run: run}
}

// Next pulls one result row.
//
// The first call executes the whole solve. On success it returns the first
// row (or reports no rows for an empty selection); on failure it returns the
// error exactly once and the cursor stays terminally failed. After the last
// row, Next reports no more rows by returning ok == false with a nil error.
func (c *Cursor) Next(ctx context.Context) (model.ResultRow, bool, error) {
	switch c.state {
	case StateUninitialized:
		g, sel, err := c.run(ctx)
		c.run = nil
		if err != nil {
			c.err = err
			c.toState(StateFailed)
			return model.ResultRow{}, false, err
		}
		c.g = g
		c.sel = sel
		c.total = len(sel.Edges)
		c.stats = g.Stats()
		c.state = StateStreaming
		return c.Next(ctx)

	case StateStreaming:
		if c.pos == c.total {
			c.toState(StateExhausted)
			return model.ResultRow{}, false, nil
		}
		row := c.translate(c.sel.Edges[c.pos])
		c.pos++
		return row, true, nil

	default: // Exhausted or Failed: the error was already surfaced once.
		return model.ResultRow{}, false, nil
	}
}

// translate converts one internal edge index back to external identifiers,
// pairing them with the original input cost.
func (c *Cursor) translate(edgeIdx int32) model.ResultRow {
	rec := c.g.Edge(edgeIdx)
	reg := c.g.Registry()
	return model.ResultRow{
		Seq:    c.pos + 1,
		Edge:   rec.Key,
		Source: reg.Resolve(rec.Source),
		Target: reg.Resolve(rec.Target),
		Cost:   rec.Cost,
	}
}

// toState enters a terminal state, releasing all retained resources.
// Release happens exactly once; re-entering a terminal state is a no-op.
func (c *Cursor) toState(s State) {
	if c.state == StateExhausted || c.state == StateFailed {
		return
	}
	c.state = s
	c.g = nil
	c.sel = solver.Selection{}
}

// All returns an iterator over the remaining rows. Iteration stops at the
// first error; stopping early leaves the cursor where it was.
func (c *Cursor) All(ctx context.Context) iter.Seq2[model.ResultRow, error] {
	return func(yield func(model.ResultRow, error) bool) {
		for {
			row, ok, err := c.Next(ctx)
			if err != nil {
				yield(model.ResultRow{}, err)
				return
			}
			if !ok {
				return
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}

// Close releases all retained resources without draining the stream.
// Closing an unstarted cursor prevents the solve from ever running.
func (c *Cursor) Close() error {
	c.run = nil
	c.toState(StateExhausted)
	return nil
}

// State returns the current lifecycle state.
func (c *Cursor) State() State { return c.state }

// Err returns the failure that moved the cursor to Failed, if any. Unlike
// Next, it reports the error on every call.
func (c *Cursor) Err() error { return c.err }

// Total returns the number of selected edges. It is only known once the
// first pull has completed successfully.
func (c *Cursor) Total() (int, bool) {
	if c.state == StateUninitialized || c.state == StateFailed {
		return 0, false
	}
	return c.total, true
}

// Stats returns the assembly statistics of the completed run.
func (c *Cursor) Stats() (graph.Stats, bool) {
	if c.state == StateUninitialized || c.state == StateFailed {
		return graph.Stats{}, false
	}
	return c.stats, true
}

package solver

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/pcstgo/model"
)

var (
	// ErrNoEdges is returned for a problem with an empty edge list.
	ErrNoEdges = errors.New("edge list is empty")

	// ErrCostMismatch is returned when edge and cost arrays differ in length.
	ErrCostMismatch = errors.New("edge and cost arrays differ in length")

	// ErrInvalidClusters is returned for a non-positive target cluster count.
	ErrInvalidClusters = errors.New("target cluster count must be positive")
)

// ErrIndexOutOfRange indicates an edge endpoint outside the dense node range.
// Such a problem must never reach the solver.
type ErrIndexOutOfRange struct {
	Edge     int
	Index    model.NodeIndex
	NumNodes int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("edge %d references node %d, valid range is 0-%d",
		e.Edge, e.Index, e.NumNodes-1)
}

// ErrInvalidCost indicates a negative or non-finite edge cost.
type ErrInvalidCost struct {
	Edge int
	Cost float64
}

func (e *ErrInvalidCost) Error() string {
	return fmt.Sprintf("edge %d has invalid cost %g", e.Edge, e.Cost)
}

// ErrInvalidRoot indicates a forced root that is out of range or not
// incident to any edge.
type ErrInvalidRoot struct {
	Root     model.NodeIndex
	NumNodes int
	Detached bool
}

func (e *ErrInvalidRoot) Error() string {
	if e.Detached {
		return fmt.Sprintf("root node %d is not connected to any edge", e.Root)
	}
	return fmt.Sprintf("root node %d is out of range, valid range is 0-%d",
		e.Root, e.NumNodes-1)
}

// Validate checks that p is structurally valid: a non-empty edge list with
// in-range endpoints, finite non-negative costs matching the edge list, a
// positive cluster count, and (if forced) an in-range root incident to at
// least one edge.
func Validate(p Problem) error {
	if len(p.Edges) == 0 {
		return ErrNoEdges
	}
	if len(p.Costs) != len(p.Edges) {
		return ErrCostMismatch
	}
	if p.NumClusters < 1 {
		return ErrInvalidClusters
	}

	n := p.NumNodes()
	for i, e := range p.Edges {
		for _, idx := range e {
			if idx < 0 || int(idx) >= n {
				return &ErrIndexOutOfRange{Edge: i, Index: idx, NumNodes: n}
			}
		}
		c := p.Costs[i]
		if c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
			return &ErrInvalidCost{Edge: i, Cost: c}
		}
	}

	if p.Root != model.NoRoot {
		if p.Root < 0 || int(p.Root) >= n {
			return &ErrInvalidRoot{Root: p.Root, NumNodes: n}
		}
		connected := false
		for _, e := range p.Edges {
			if e[0] == p.Root || e[1] == p.Root {
				connected = true
				break
			}
		}
		if !connected {
			return &ErrInvalidRoot{Root: p.Root, NumNodes: n, Detached: true}
		}
	}

	return nil
}

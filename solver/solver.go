package solver

import (
	"context"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/pcstgo/model"
)

// Endpoints is one undirected edge as a pair of dense node indices.
type Endpoints [2]model.NodeIndex

// Problem is a structurally complete solver input over dense arrays.
type Problem struct {
	// Edges and Costs are parallel: Costs[i] is the cost of Edges[i].
	Edges []Endpoints
	Costs []float64

	// Prizes is indexed by dense node index; its length is the node count.
	Prizes []float64

	// Root is a forced root index, or model.NoRoot for auto-select.
	Root model.NodeIndex

	// NumClusters is the target number of active clusters (>= 1).
	NumClusters int

	// Pruning selects the pruning strategy.
	Pruning PruningMethod

	// Verbosity controls the solver's own log volume. It must never affect
	// the result.
	Verbosity int
}

// NumNodes returns the dense node count of the problem.
func (p Problem) NumNodes() int { return len(p.Prizes) }

// Selection is a successful solver outcome.
type Selection struct {
	// Nodes is the set of selected node indices.
	Nodes *roaring.Bitmap
	// Edges holds the selected edge indices in the solver's own selection
	// order. Indices refer to positions in Problem.Edges.
	Edges []int32
}

// Solver is the external PCST solver. Implementations are treated as
// side-effect-free and total for any structurally valid input; Validate
// guarantees structural validity before every call.
type Solver interface {
	Solve(ctx context.Context, p Problem) (Selection, error)
}

// Func adapts a plain function to the Solver interface.
type Func func(ctx context.Context, p Problem) (Selection, error)

// Solve implements Solver.
func (f Func) Solve(ctx context.Context, p Problem) (Selection, error) {
	return f(ctx, p)
}

// Failure wraps a solver-signaled failure. The Diagnostic text is carried
// verbatim; failures are never retried here.
type Failure struct {
	Diagnostic string
}

func (e *Failure) Error() string {
	return fmt.Sprintf("solver failed: %s", e.Diagnostic)
}

// Invoke validates p and calls s exactly once. Any solver error is wrapped
// as a *Failure carrying the solver's diagnostic verbatim.
func Invoke(ctx context.Context, s Solver, p Problem) (Selection, error) {
	if err := Validate(p); err != nil {
		return Selection{}, err
	}
	sel, err := s.Solve(ctx, p)
	if err != nil {
		return Selection{}, &Failure{Diagnostic: err.Error()}
	}
	return sel, nil
}

package graph

import (
	"github.com/hupe1980/pcstgo/model"
	"github.com/hupe1980/pcstgo/registry"
	"github.com/hupe1980/pcstgo/solver"
)

// Graph is the assembled, immutable solver input of one run: the edge list,
// the dense prize table and the registry that owns the identifier mapping.
// It becomes read-only the instant assembly completes.
type Graph struct {
	edges  []model.EdgeRecord
	prizes []float64
	reg    *registry.Registry
	stats  Stats
}

// Edges returns the assembled edge list in input row order.
// Callers must treat the slice as read-only.
func (g *Graph) Edges() []model.EdgeRecord { return g.edges }

// Edge returns the record at the given internal edge index.
func (g *Graph) Edge(i int32) model.EdgeRecord { return g.edges[i] }

// Prizes returns the dense prize table. Read-only for callers.
func (g *Graph) Prizes() []float64 { return g.prizes }

// Registry returns the identifier registry. Read-only after assembly.
func (g *Graph) Registry() *registry.Registry { return g.reg }

// NumNodes returns the dense node count.
func (g *Graph) NumNodes() int { return g.reg.Len() }

// NumEdges returns the edge count.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Stats returns the assembly statistics.
func (g *Graph) Stats() Stats { return g.stats }

// ResolveRoot maps an external root identifier to a RootSpec. An invalid
// (null/absent) key means auto-select and performs no lookup at all. A named
// root that does not resolve against the edge-derived registry is a fatal
// UnknownIdentifierError; it never silently falls back to auto-select.
func (g *Graph) ResolveRoot(k model.Key) (model.RootSpec, error) {
	if !k.Valid() {
		return model.AutoRoot(), nil
	}
	i, ok := g.reg.Lookup(k)
	if !ok {
		return model.RootSpec{}, &UnknownIdentifierError{Key: k, Role: "root"}
	}
	return model.RootIndex(i), nil
}

// Problem builds the solver input from the assembled arrays.
func (g *Graph) Problem(root model.RootSpec, numClusters int, pruning solver.PruningMethod, verbosity int) solver.Problem {
	edges := make([]solver.Endpoints, len(g.edges))
	costs := make([]float64, len(g.edges))
	for i, e := range g.edges {
		edges[i] = solver.Endpoints{e.Source, e.Target}
		costs[i] = e.Cost
	}
	return solver.Problem{
		Edges:       edges,
		Costs:       costs,
		Prizes:      g.prizes,
		Root:        root.Index(),
		NumClusters: numClusters,
		Pruning:     pruning,
		Verbosity:   verbosity,
	}
}

package graph

import (
	"math"

	"github.com/hupe1980/pcstgo/model"
	"github.com/hupe1980/pcstgo/registry"
	"github.com/hupe1980/pcstgo/rowsource"
)

// Stats are assembly statistics, observational only. Logged at higher
// verbosity; never part of control flow.
type Stats struct {
	Nodes         int
	Edges         int
	PrizesApplied int
	PrizesSkipped int
}

type phase uint8

const (
	phaseEdges phase = iota
	phasePrizes
	phaseDone
)

// Assembler builds a Graph from externally identified rows.
//
// Call ConsumeEdge for every edge row in row order, then SealEdges, then
// ConsumePrize for every prize row, then Finalize. An Assembler is used for
// exactly one run and is not safe for concurrent use.
type Assembler struct {
	reg     *registry.Registry
	edges   []model.EdgeRecord
	prizes  []float64
	phase   phase
	edgeRow int
	stats   Stats
}

// NewAssembler creates an assembler with a fresh registry.
func NewAssembler() *Assembler {
	return &Assembler{
		reg: registry.New(),
	}
}

// ConsumeEdge interns both endpoints of the row and appends an EdgeRecord.
// Any missing required field or invalid cost aborts the whole assembly with
// a MalformedInputError.
func (a *Assembler) ConsumeEdge(row rowsource.EdgeRow) error {
	if a.phase != phaseEdges {
		return &MalformedInputError{Reason: "edge row after prize phase"}
	}
	a.edgeRow++

	if !row.Edge.Valid() {
		return &MalformedInputError{Row: a.edgeRow, Reason: "edge id is null"}
	}
	if !row.Source.Valid() {
		return &MalformedInputError{Row: a.edgeRow, Reason: "source id is null"}
	}
	if !row.Target.Valid() {
		return &MalformedInputError{Row: a.edgeRow, Reason: "target id is null"}
	}
	if !row.Cost.Valid {
		return &MalformedInputError{Row: a.edgeRow, Reason: "cost is null"}
	}
	c := row.Cost.Float64
	if c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
		return &MalformedInputError{Row: a.edgeRow, Reason: "cost is negative or not finite"}
	}

	a.edges = append(a.edges, model.EdgeRecord{
		Key:    row.Edge,
		Source: a.reg.Intern(row.Source),
		Target: a.reg.Intern(row.Target),
		Cost:   c,
	})
	return nil
}

// SealEdges ends the edge phase. Zero edge rows is itself malformed input.
// The prize table is allocated here, at full registry size with every entry
// at 0.0; the registry accepts no further interning after this point.
func (a *Assembler) SealEdges() error {
	if a.phase != phaseEdges {
		return &MalformedInputError{Reason: "edge phase already sealed"}
	}
	if len(a.edges) == 0 {
		return &MalformedInputError{Reason: "no edge rows"}
	}
	a.prizes = make([]float64, a.reg.Len())
	a.phase = phasePrizes
	return nil
}

// ConsumePrize overlays one prize row. The node id is looked up, never
// interned: ids absent from the edge-derived registry are skipped silently,
// as are rows with a null prize. Duplicate ids resolve last-write-wins in
// row order.
func (a *Assembler) ConsumePrize(row rowsource.PrizeRow) error {
	if a.phase != phasePrizes {
		return &MalformedInputError{Reason: "prize row outside prize phase"}
	}
	if !row.Node.Valid() || !row.Prize.Valid {
		a.stats.PrizesSkipped++
		return nil
	}
	i, ok := a.reg.Lookup(row.Node)
	if !ok {
		a.stats.PrizesSkipped++
		return nil
	}
	a.prizes[i] = row.Prize.Float64
	a.stats.PrizesApplied++
	return nil
}

// Finalize returns the immutable Graph. The assembler must not be used
// afterwards.
func (a *Assembler) Finalize() (*Graph, error) {
	if a.phase != phasePrizes {
		return nil, &MalformedInputError{Reason: "finalize before sealing edges"}
	}
	a.phase = phaseDone
	a.stats.Nodes = a.reg.Len()
	a.stats.Edges = len(a.edges)

	g := &Graph{
		edges:  a.edges,
		prizes: a.prizes,
		reg:    a.reg,
		stats:  a.stats,
	}
	a.reg, a.edges, a.prizes = nil, nil, nil
	return g, nil
}

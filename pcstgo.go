package pcstgo

import (
	"context"
	"time"

	"github.com/hupe1980/pcstgo/graph"
	"github.com/hupe1980/pcstgo/resource"
	"github.com/hupe1980/pcstgo/rowsource"
	"github.com/hupe1980/pcstgo/solver"
	"github.com/hupe1980/pcstgo/stream"
)

// PCST is the adapter between relational row sources and an external
// prize-collecting Steiner tree solver. A PCST instance is immutable after
// New and safe for concurrent use; each Query produces an independent,
// single-threaded cursor.
type PCST struct {
	solver  solver.Solver
	logger  *Logger
	metrics MetricsCollector
	limiter *resource.Limiter
}

// New creates a PCST adapter around the given solver.
func New(s solver.Solver, optFns ...Option) (*PCST, error) {
	if s == nil {
		return nil, ErrNilSolver
	}

	o := applyOptions(optFns)

	return &PCST{
		solver:  s,
		logger:  o.logger,
		metrics: o.metrics,
		limiter: o.limiter,
	}, nil
}

// Query starts one relational solve over the given edge and prize sources
// and returns a cursor over the selected edges.
//
// Nothing executes until the cursor's first pull: it consumes the edge
// source, overlays the prize source, resolves the root, invokes the solver
// once and then streams one translated row per selected edge. Any failure
// along the way surfaces on that first pull and the cursor stays terminally
// failed. A nil prizes source means no prize overlay at all.
func (p *PCST) Query(edges rowsource.EdgeSource, prizes rowsource.PrizeSource, optFns ...func(*QueryOptions)) *stream.Cursor {
	opts := applyQueryOptions(optFns)

	return stream.New(func(ctx context.Context) (*graph.Graph, solver.Selection, error) {
		g, err := p.assemble(ctx, edges, prizes)
		if err != nil {
			return nil, solver.Selection{}, translateError(err)
		}

		root, err := g.ResolveRoot(opts.Root)
		if err != nil {
			p.logger.WarnContext(ctx, "root resolution failed", "error", err)
			return nil, solver.Selection{}, translateError(err)
		}

		prob := g.Problem(root, opts.NumClusters, solver.ParsePruning(opts.Pruning), opts.Verbosity)

		sel, err := p.solve(ctx, prob, opts.Verbosity)
		if err != nil {
			return nil, solver.Selection{}, translateError(err)
		}
		return g, sel, nil
	})
}

func (p *PCST) assemble(ctx context.Context, edges rowsource.EdgeSource, prizes rowsource.PrizeSource) (*graph.Graph, error) {
	start := time.Now()

	a := graph.NewAssembler()
	g, err := p.runAssembly(ctx, a, edges, prizes)

	duration := time.Since(start)

	var stats graph.Stats
	if g != nil {
		stats = g.Stats()
	}
	p.metrics.RecordAssemble(stats.Nodes, stats.Edges, duration, err)
	p.logger.LogAssemble(ctx, stats, duration, err)

	return g, err
}

func (p *PCST) runAssembly(ctx context.Context, a *graph.Assembler, edges rowsource.EdgeSource, prizes rowsource.PrizeSource) (*graph.Graph, error) {
	for row, err := range rowsource.ThrottleEdges(edges, p.limiter).EdgeRows(ctx) {
		if err != nil {
			return nil, err
		}
		if err := a.ConsumeEdge(row); err != nil {
			return nil, err
		}
	}
	if err := a.SealEdges(); err != nil {
		return nil, err
	}

	if prizes != nil {
		for row, err := range rowsource.ThrottlePrizes(prizes, p.limiter).PrizeRows(ctx) {
			if err != nil {
				return nil, err
			}
			if err := a.ConsumePrize(row); err != nil {
				return nil, err
			}
		}
	}

	return a.Finalize()
}

func (p *PCST) solve(ctx context.Context, prob solver.Problem, verbosity int) (solver.Selection, error) {
	if err := p.limiter.AcquireSolve(ctx); err != nil {
		return solver.Selection{}, err
	}
	defer p.limiter.ReleaseSolve()

	start := time.Now()
	sel, err := solver.Invoke(ctx, p.solver, prob)
	duration := time.Since(start)

	p.metrics.RecordSolve(len(sel.Edges), duration, err)
	if verbosity > 0 || err != nil {
		p.logger.LogSolve(ctx, prob.Pruning.String(), prob.NumClusters, len(sel.Edges), duration, err)
	}
	return sel, err
}

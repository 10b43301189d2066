package pcstgo

import (
	"context"
	"time"

	"github.com/hupe1980/pcstgo/model"
	"github.com/hupe1980/pcstgo/solver"
)

// DenseOptions controls a dense pass-through solve.
type DenseOptions struct {
	// Root is a dense node index, or model.NoRoot for auto-select.
	Root model.NodeIndex

	// NumClusters is the target number of active clusters. Default: 1.
	NumClusters int

	// Pruning names the pruning strategy. Unrecognized names fall back
	// to "gw".
	Pruning string

	// Verbosity controls log volume only.
	Verbosity int
}

// SolveDense invokes the solver directly on dense arrays, bypassing
// identifier canonicalization entirely. Inputs are validated exactly as in
// the relational path; the selection carries raw dense indices back.
func (p *PCST) SolveDense(ctx context.Context, edges []solver.Endpoints, costs, prizes []float64, optFns ...func(*DenseOptions)) (solver.Selection, error) {
	opts := DenseOptions{
		Root:        model.NoRoot,
		NumClusters: 1,
		Pruning:     "gw",
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}

	prob := solver.Problem{
		Edges:       edges,
		Costs:       costs,
		Prizes:      prizes,
		Root:        opts.Root,
		NumClusters: opts.NumClusters,
		Pruning:     solver.ParsePruning(opts.Pruning),
		Verbosity:   opts.Verbosity,
	}

	if err := p.limiter.AcquireSolve(ctx); err != nil {
		return solver.Selection{}, err
	}
	defer p.limiter.ReleaseSolve()

	start := time.Now()
	sel, err := solver.Invoke(ctx, p.solver, prob)
	duration := time.Since(start)

	p.metrics.RecordDense(duration, err)
	if opts.Verbosity > 0 || err != nil {
		p.logger.LogSolve(ctx, prob.Pruning.String(), prob.NumClusters, len(sel.Edges), duration, err)
	}
	if err != nil {
		return solver.Selection{}, translateError(err)
	}
	return sel, nil
}

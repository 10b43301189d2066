package pcstgo

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/pcstgo/model"
	"github.com/hupe1980/pcstgo/rowsource"
)

// Job is one relational solve in a batch.
type Job struct {
	Edges   rowsource.EdgeSource
	Prizes  rowsource.PrizeSource
	Options []func(*QueryOptions)
}

// SolveAll runs the jobs concurrently and collects every job's full result
// set. Results[i] belongs to jobs[i]. The instance's resource limits bound
// the actual solver concurrency; the first failing job cancels the rest and
// its error is returned.
func (p *PCST) SolveAll(ctx context.Context, jobs []Job) ([][]model.ResultRow, error) {
	results := make([][]model.ResultRow, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		g.Go(func() error {
			cursor := p.Query(job.Edges, job.Prizes, job.Options...)
			defer cursor.Close()

			var rows []model.ResultRow
			for {
				row, ok, err := cursor.Next(ctx)
				if err != nil {
					return err
				}
				if !ok {
					break
				}
				rows = append(rows, row)
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

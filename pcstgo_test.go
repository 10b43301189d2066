package pcstgo

import (
	"context"
	"errors"
	"iter"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pcstgo/model"
	"github.com/hupe1980/pcstgo/resource"
	"github.com/hupe1980/pcstgo/rowsource"
	"github.com/hupe1980/pcstgo/solver"
	"github.com/hupe1980/pcstgo/stream"
)

// fakeSolver records every problem it receives and replays a canned
// selection.
type fakeSolver struct {
	mu       sync.Mutex
	calls    atomic.Int64
	lastProb solver.Problem
	sel      solver.Selection
	err      error
}

func (f *fakeSolver) Solve(_ context.Context, p solver.Problem) (solver.Selection, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.lastProb = p
	f.mu.Unlock()
	if f.err != nil {
		return solver.Selection{}, f.err
	}
	return f.sel, nil
}

func (f *fakeSolver) last() solver.Problem {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastProb
}

func testEdges() rowsource.EdgeSlice {
	return rowsource.EdgeSlice{
		{Edge: model.StringKey("e1"), Source: model.StringKey("A"), Target: model.StringKey("B"), Cost: model.Float(1.0)},
		{Edge: model.StringKey("e2"), Source: model.StringKey("B"), Target: model.StringKey("C"), Cost: model.Float(2.0)},
		{Edge: model.StringKey("e3"), Source: model.StringKey("A"), Target: model.StringKey("C"), Cost: model.Float(5.0)},
	}
}

func testPrizes() rowsource.PrizeSlice {
	return rowsource.PrizeSlice{
		{Node: model.StringKey("B"), Prize: model.Float(10.0)},
		{Node: model.StringKey("C"), Prize: model.Float(3.0)},
		{Node: model.StringKey("Z"), Prize: model.Float(99.0)}, // unknown, skipped
		{Node: model.StringKey("A"), Prize: model.NullFloat{}}, // null, skipped
	}
}

func TestNew(t *testing.T) {
	t.Run("nil solver", func(t *testing.T) {
		p, err := New(nil)
		require.ErrorIs(t, err, ErrNilSolver)
		assert.Nil(t, p)
	})

	t.Run("defaults", func(t *testing.T) {
		p, err := New(&fakeSolver{})
		require.NoError(t, err)
		require.NotNil(t, p)
	})
}

func TestQuery(t *testing.T) {
	ctx := context.Background()

	fs := &fakeSolver{
		sel: solver.Selection{
			Nodes: roaring.BitmapOf(0, 1, 2),
			Edges: []int32{1, 0},
		},
	}
	p, err := New(fs)
	require.NoError(t, err)

	cursor := p.Query(testEdges(), testPrizes())
	require.Equal(t, stream.StateUninitialized, cursor.State())
	require.EqualValues(t, 0, fs.calls.Load(), "nothing runs before the first pull")

	row, ok, err := cursor.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	// The solver saw dense arrays in first-seen order: A=0, B=1, C=2.
	require.Equal(t, []float64{0, 10, 3}, fs.last().Prizes)
	require.Equal(t, []float64{1, 2, 5}, fs.last().Costs)
	require.Equal(t, []solver.Endpoints{{0, 1}, {1, 2}, {0, 2}}, fs.last().Edges)
	require.Equal(t, model.NoRoot, fs.last().Root)
	require.Equal(t, 1, fs.last().NumClusters)
	require.Equal(t, solver.PruningGW, fs.last().Pruning)

	// Rows come back in the solver's selection order, re-numbered from 1.
	assert.Equal(t, 1, row.Seq)
	assert.Equal(t, model.StringKey("e2"), row.Edge)
	assert.Equal(t, model.StringKey("B"), row.Source)
	assert.Equal(t, model.StringKey("C"), row.Target)
	assert.Equal(t, 2.0, row.Cost)

	row, ok, err = cursor.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, row.Seq)
	assert.Equal(t, model.StringKey("e1"), row.Edge)
	assert.Equal(t, 1.0, row.Cost)

	_, ok, err = cursor.Next(ctx)
	require.NoError(t, err)
	require.False(t, ok)
	assert.Equal(t, stream.StateExhausted, cursor.State())

	stats, known := cursor.Stats()
	require.True(t, known)
	assert.Equal(t, 3, stats.Nodes)
	assert.Equal(t, 3, stats.Edges)
	assert.Equal(t, 2, stats.PrizesApplied)
	assert.Equal(t, 2, stats.PrizesSkipped)

	require.EqualValues(t, 1, fs.calls.Load(), "solver invoked exactly once")
}

func TestQueryForcedRoot(t *testing.T) {
	ctx := context.Background()

	fs := &fakeSolver{sel: solver.Selection{Edges: []int32{0}}}
	p, err := New(fs)
	require.NoError(t, err)

	cursor := p.Query(testEdges(), rowsource.NoPrizes(), func(o *QueryOptions) {
		o.Root = model.StringKey("B")
	})

	_, ok, err := cursor.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.NodeIndex(1), fs.last().Root)
}

func TestQueryUnknownRoot(t *testing.T) {
	ctx := context.Background()

	fs := &fakeSolver{sel: solver.Selection{Edges: []int32{0}}}
	p, err := New(fs)
	require.NoError(t, err)

	cursor := p.Query(testEdges(), testPrizes(), func(o *QueryOptions) {
		o.Root = model.StringKey("Z")
	})

	_, ok, err := cursor.Next(ctx)
	require.ErrorIs(t, err, ErrUnknownIdentifier)
	require.False(t, ok)
	assert.Equal(t, stream.StateFailed, cursor.State())
	assert.EqualValues(t, 0, fs.calls.Load(), "solver never invoked on a fatal root")

	// The error surfaces exactly once; later pulls just report no rows.
	_, ok, err = cursor.Next(ctx)
	require.NoError(t, err)
	require.False(t, ok)
	assert.ErrorIs(t, cursor.Err(), ErrUnknownIdentifier)
}

func TestQueryMalformedInput(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		edges rowsource.EdgeSlice
	}{
		{
			name:  "zero edge rows",
			edges: rowsource.EdgeSlice{},
		},
		{
			name: "null cost",
			edges: rowsource.EdgeSlice{
				{Edge: model.StringKey("e1"), Source: model.StringKey("A"), Target: model.StringKey("B"), Cost: model.NullFloat{}},
			},
		},
		{
			name: "negative cost",
			edges: rowsource.EdgeSlice{
				{Edge: model.StringKey("e1"), Source: model.StringKey("A"), Target: model.StringKey("B"), Cost: model.Float(-1)},
			},
		},
		{
			name: "null endpoint",
			edges: rowsource.EdgeSlice{
				{Edge: model.StringKey("e1"), Source: model.Key{}, Target: model.StringKey("B"), Cost: model.Float(1)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := &fakeSolver{}
			p, err := New(fs)
			require.NoError(t, err)

			cursor := p.Query(tt.edges, rowsource.NoPrizes())
			_, ok, err := cursor.Next(ctx)
			require.ErrorIs(t, err, ErrMalformedInput)
			require.False(t, ok)
			assert.EqualValues(t, 0, fs.calls.Load())
		})
	}
}

func TestQuerySolverFailure(t *testing.T) {
	ctx := context.Background()

	fs := &fakeSolver{err: errors.New("pcst: invalid cluster configuration")}
	p, err := New(fs)
	require.NoError(t, err)

	cursor := p.Query(testEdges(), rowsource.NoPrizes())
	_, ok, err := cursor.Next(ctx)
	require.ErrorIs(t, err, ErrSolverFailure)
	require.False(t, ok)
	assert.Contains(t, err.Error(), "pcst: invalid cluster configuration")
}

func TestQuerySourceFailure(t *testing.T) {
	ctx := context.Background()

	boom := errors.New("connection reset")
	failing := edgeSourceFunc(func(context.Context) ([]rowsource.EdgeRow, error) {
		return nil, boom
	})

	p, err := New(&fakeSolver{})
	require.NoError(t, err)

	cursor := p.Query(failing, rowsource.NoPrizes())
	_, ok, err := cursor.Next(ctx)
	require.ErrorIs(t, err, ErrSourceFailure)
	require.False(t, ok)
	assert.ErrorIs(t, err, boom)
}

// edgeSourceFunc adapts a buffered fetch into an EdgeSource for tests.
type edgeSourceFunc func(ctx context.Context) ([]rowsource.EdgeRow, error)

func (f edgeSourceFunc) EdgeRows(ctx context.Context) iter.Seq2[rowsource.EdgeRow, error] {
	return func(yield func(rowsource.EdgeRow, error) bool) {
		rows, err := f(ctx)
		if err != nil {
			yield(rowsource.EdgeRow{}, rowsource.WrapError("edges", err))
			return
		}
		for _, row := range rows {
			if !yield(row, nil) {
				return
			}
		}
	}
}

func TestQueryVerbosityInvariance(t *testing.T) {
	ctx := context.Background()

	collect := func(verbosity int) []model.ResultRow {
		fs := &fakeSolver{sel: solver.Selection{Edges: []int32{2, 0, 1}}}
		p, err := New(fs)
		require.NoError(t, err)

		cursor := p.Query(testEdges(), testPrizes(), func(o *QueryOptions) {
			o.Verbosity = verbosity
		})

		var rows []model.ResultRow
		for row, err := range cursor.All(ctx) {
			require.NoError(t, err)
			rows = append(rows, row)
		}
		return rows
	}

	assert.Equal(t, collect(0), collect(3))
}

func TestSolveDense(t *testing.T) {
	ctx := context.Background()

	fs := &fakeSolver{sel: solver.Selection{Edges: []int32{0}}}
	p, err := New(fs)
	require.NoError(t, err)

	edges := []solver.Endpoints{{0, 1}, {1, 2}}
	costs := []float64{1, 2}
	prizes := []float64{0, 5, 5}

	sel, err := p.SolveDense(ctx, edges, costs, prizes, func(o *DenseOptions) {
		o.Root = 0
		o.Pruning = "strong"
	})
	require.NoError(t, err)
	assert.Equal(t, []int32{0}, sel.Edges)
	assert.Equal(t, model.NodeIndex(0), fs.last().Root)
	assert.Equal(t, solver.PruningStrong, fs.last().Pruning)

	t.Run("invalid input", func(t *testing.T) {
		_, err := p.SolveDense(ctx, nil, nil, prizes)
		require.Error(t, err)
		assert.EqualValues(t, 1, fs.calls.Load(), "validation failures never reach the solver")
	})
}

func TestSolveAll(t *testing.T) {
	ctx := context.Background()

	fs := &fakeSolver{sel: solver.Selection{Edges: []int32{0, 1}}}
	p, err := New(fs, WithResourceLimits(resource.Config{MaxConcurrentSolves: 2}))
	require.NoError(t, err)

	jobs := []Job{
		{Edges: testEdges(), Prizes: testPrizes()},
		{Edges: testEdges(), Prizes: rowsource.NoPrizes()},
		{Edges: testEdges()},
	}

	results, err := p.SolveAll(ctx, jobs)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, rows := range results {
		require.Len(t, rows, 2)
		assert.Equal(t, 1, rows[0].Seq)
		assert.Equal(t, 2, rows[1].Seq)
	}
	assert.EqualValues(t, 3, fs.calls.Load())

	t.Run("failing job cancels the batch", func(t *testing.T) {
		bad := []Job{
			{Edges: testEdges()},
			{Edges: rowsource.EdgeSlice{}},
		}
		_, err := p.SolveAll(ctx, bad)
		require.ErrorIs(t, err, ErrMalformedInput)
	})
}

func TestBasicMetricsCollector(t *testing.T) {
	ctx := context.Background()

	mc := &BasicMetricsCollector{}
	fs := &fakeSolver{sel: solver.Selection{Edges: []int32{0, 1}}}
	p, err := New(fs, WithMetricsCollector(mc))
	require.NoError(t, err)

	cursor := p.Query(testEdges(), testPrizes())
	for _, err := range cursor.All(ctx) {
		require.NoError(t, err)
	}

	assert.EqualValues(t, 1, mc.AssembleCount.Load())
	assert.EqualValues(t, 1, mc.SolveCount.Load())
	assert.EqualValues(t, 2, mc.SelectedEdges.Load())
	assert.EqualValues(t, 0, mc.SolveErrors.Load())

	_, err = p.SolveDense(ctx, []solver.Endpoints{{0, 1}}, []float64{1}, []float64{0, 1})
	require.NoError(t, err)
	assert.EqualValues(t, 1, mc.DenseCount.Load())
}

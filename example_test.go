package pcstgo_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/pcstgo"
	"github.com/hupe1980/pcstgo/model"
	"github.com/hupe1980/pcstgo/rowsource"
	"github.com/hupe1980/pcstgo/solver"
)

// spanningSolver selects every edge. A real deployment plugs in a PCST
// implementation here, e.g. a cgo binding or an external process.
var spanningSolver = solver.Func(func(_ context.Context, p solver.Problem) (solver.Selection, error) {
	edges := make([]int32, len(p.Edges))
	for i := range edges {
		edges[i] = int32(i)
	}
	return solver.Selection{Edges: edges}, nil
})

func Example() {
	p, err := pcstgo.New(spanningSolver)
	if err != nil {
		log.Fatal(err)
	}

	edges := rowsource.EdgeSlice{
		{Edge: model.StringKey("e1"), Source: model.StringKey("hub"), Target: model.StringKey("a"), Cost: model.Float(1.5)},
		{Edge: model.StringKey("e2"), Source: model.StringKey("hub"), Target: model.StringKey("b"), Cost: model.Float(2.0)},
	}
	prizes := rowsource.PrizeSlice{
		{Node: model.StringKey("a"), Prize: model.Float(10)},
		{Node: model.StringKey("b"), Prize: model.Float(4)},
	}

	cursor := p.Query(edges, prizes, func(o *pcstgo.QueryOptions) {
		o.Root = model.StringKey("hub")
		o.Pruning = "strong"
	})
	defer cursor.Close()

	ctx := context.Background()
	for row, err := range cursor.All(ctx) {
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%d: %s %s-%s %.1f\n", row.Seq, row.Edge.Canonical(), row.Source.Canonical(), row.Target.Canonical(), row.Cost)
	}
	// Output:
	// 1: e1 hub-a 1.5
	// 2: e2 hub-b 2.0
}

func ExamplePCST_SolveDense() {
	p, err := pcstgo.New(spanningSolver)
	if err != nil {
		log.Fatal(err)
	}

	edges := []solver.Endpoints{{0, 1}, {1, 2}}
	costs := []float64{1, 2}
	prizes := []float64{0, 5, 8}

	sel, err := p.SolveDense(context.Background(), edges, costs, prizes)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(sel.Edges)
	// Output:
	// [0 1]
}

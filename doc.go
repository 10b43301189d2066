// Package pcstgo adapts a generic prize-collecting Steiner tree (PCST)
// solver to relational data with arbitrary, externally-typed identifiers.
//
// A PCST solver works on a dense index space: nodes 0..N-1, edges as index
// pairs, prizes and costs as dense arrays. Real data rarely looks like that;
// node and edge identifiers are integers, text or UUID-like strings coming
// out of a query engine. pcstgo bridges the two worlds:
//
//   - it canonicalizes external identifiers into a dense index space
//     (first-seen order, deterministic),
//   - assembles the solver's input arrays from ordered edge and prize rows,
//   - validates and invokes the solver as an opaque pure function,
//   - and translates the index-based result back to external identifiers
//     through a pull-based streaming cursor.
//
// # Quick Start
//
//	p, err := pcstgo.New(mySolver)
//	if err != nil {
//	    panic(err)
//	}
//
//	edges := rowsource.EdgeSlice{
//	    {Edge: model.StringKey("e1"), Source: model.StringKey("A"), Target: model.StringKey("B"), Cost: model.Float(2.0)},
//	    {Edge: model.StringKey("e2"), Source: model.StringKey("B"), Target: model.StringKey("C"), Cost: model.Float(1.5)},
//	}
//	prizes := rowsource.PrizeSlice{
//	    {Node: model.StringKey("A"), Prize: model.Float(3.0)},
//	    {Node: model.StringKey("C"), Prize: model.Float(3.0)},
//	}
//
//	cur := p.Query(edges, prizes, func(o *pcstgo.QueryOptions) {
//	    o.Root = model.StringKey("A")
//	})
//	defer cur.Close()
//
//	for row, err := range cur.All(ctx) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(row)
//	}
//
// The first pull runs assembly, root resolution and the solve eagerly and
// exactly once; every later pull is a cheap translation of one selected
// edge. Rows can also come straight from a database via
// rowsource.SQLEdgeSource / rowsource.SQLPrizeSource.
//
// For input that is already dense, SolveDense skips the registry and
// translation entirely and passes the arrays through the same validation
// boundary.
//
// Completed solves can be serialized with the archive package and published
// to any blobstore backend (local, in-memory, MinIO, S3).
package pcstgo

// Package model defines core types used throughout pcstgo.
//
// # Identity Types
//
//   - Key: opaque external node/edge identifier (int64, uint64, string or bytes)
//   - NodeIndex: dense zero-based node index, the solver's native domain
//   - RootSpec: optional forced root, resolved once per run
//
// # Data Types
//
//   - EdgeRecord: one assembled edge (external key + dense endpoints + cost)
//   - ResultRow: the externally visible output shape, one row per selected edge
//   - NullFloat: a float64 that may be absent (SQL NULL)
//
// Keys compare by canonical content, not by source type: model.Int64Key(42)
// and model.StringKey("42") intern to the same dense index.
package model

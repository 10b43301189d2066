// Package graph assembles the solver's dense input arrays from externally
// identified edge and prize rows.
//
// Assembly is two-phase, matching the input protocol: every edge row is
// consumed first (interning endpoints into the registry in strict row
// order), then the prize table is allocated at full registry size and prize
// rows are overlaid onto it. The result is an immutable Graph owned by a
// single run.
package graph

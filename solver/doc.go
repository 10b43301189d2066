// Package solver defines the invocation boundary to an external
// prize-collecting Steiner tree solver.
//
// The solver itself is a collaborator, consumed as an opaque pure function
// over dense arrays: given an edge list, a cost array, a prize array, an
// optional root and a target cluster count, it returns the selected node
// index set and the selected edge index sequence. This package validates
// every problem before it reaches the solver and classifies solver outcomes;
// it does not implement the growth/pruning algorithm.
package solver

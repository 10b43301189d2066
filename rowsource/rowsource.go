// Package rowsource defines the boundary to the query-execution
// collaborator: ordered, typed row streams for edges and prizes.
//
// Sources yield rows in the order of the underlying query; row order is
// significant, because dense indices are assigned in strict first-seen order. Built-in implementations cover in-memory slices and
// database/sql result sets.
package rowsource

import (
	"context"
	"fmt"
	"iter"

	"github.com/hupe1980/pcstgo/model"
)

// EdgeRow is one edge input row. All fields are required; an invalid Key or
// null cost makes the whole assembly fail.
type EdgeRow struct {
	Edge   model.Key
	Source model.Key
	Target model.Key
	Cost   model.NullFloat
}

// PrizeRow is one prize input row. Rows with a null prize or an identifier
// that never appears in an edge are skipped, not errors.
type PrizeRow struct {
	Node  model.Key
	Prize model.NullFloat
}

// EdgeSource yields edge rows in query order.
type EdgeSource interface {
	EdgeRows(ctx context.Context) iter.Seq2[EdgeRow, error]
}

// PrizeSource yields prize rows in query order.
type PrizeSource interface {
	PrizeRows(ctx context.Context) iter.Seq2[PrizeRow, error]
}

// SourceError wraps a collaborator failure with the query role that failed.
type SourceError struct {
	// Role is "edges" or "prizes".
	Role  string
	cause error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s source failed: %v", e.Role, e.cause)
}

func (e *SourceError) Unwrap() error { return e.cause }

// WrapError attaches the query role to a collaborator error. A nil error
// passes through.
func WrapError(role string, err error) error {
	if err == nil {
		return nil
	}
	return &SourceError{Role: role, cause: err}
}

// EdgeSlice is an in-memory EdgeSource.
type EdgeSlice []EdgeRow

// EdgeRows implements EdgeSource.
func (s EdgeSlice) EdgeRows(ctx context.Context) iter.Seq2[EdgeRow, error] {
	return func(yield func(EdgeRow, error) bool) {
		for _, row := range s {
			if err := ctx.Err(); err != nil {
				yield(EdgeRow{}, WrapError("edges", err))
				return
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}

// PrizeSlice is an in-memory PrizeSource.
type PrizeSlice []PrizeRow

// PrizeRows implements PrizeSource.
func (s PrizeSlice) PrizeRows(ctx context.Context) iter.Seq2[PrizeRow, error] {
	return func(yield func(PrizeRow, error) bool) {
		for _, row := range s {
			if err := ctx.Err(); err != nil {
				yield(PrizeRow{}, WrapError("prizes", err))
				return
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}

// NoPrizes returns an empty prize source: every node keeps the default
// prize of 0.0.
func NoPrizes() PrizeSource { return PrizeSlice(nil) }

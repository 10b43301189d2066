package pcstgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/pcstgo/graph"
	"github.com/hupe1980/pcstgo/rowsource"
	"github.com/hupe1980/pcstgo/solver"
)

var (
	// ErrNilSolver is returned by New when no solver is supplied.
	ErrNilSolver = errors.New("solver must not be nil")

	// ErrMalformedInput marks input that can never produce a graph: a null
	// required field, an invalid cost, or zero edge rows. Fatal; nothing is
	// solved.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnknownIdentifier marks an external identifier that does not
	// resolve, e.g. a named root absent from the edge-derived registry.
	ErrUnknownIdentifier = errors.New("unknown identifier")

	// ErrSolverFailure marks a failure signaled by the external solver. The
	// solver's diagnostic is preserved verbatim in the wrapped error.
	ErrSolverFailure = errors.New("solver failure")

	// ErrSourceFailure marks an error reported by the query-execution
	// collaborator, annotated with the query role that failed.
	ErrSourceFailure = errors.New("row source failure")
)

// translateError maps domain-package errors onto the package-level
// sentinels. The original error stays reachable via errors.Unwrap.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var me *graph.MalformedInputError
	if errors.As(err, &me) {
		return fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	var ue *graph.UnknownIdentifierError
	if errors.As(err, &ue) {
		return fmt.Errorf("%w: %w", ErrUnknownIdentifier, err)
	}
	var sf *solver.Failure
	if errors.As(err, &sf) {
		return fmt.Errorf("%w: %w", ErrSolverFailure, err)
	}
	var se *rowsource.SourceError
	if errors.As(err, &se) {
		return fmt.Errorf("%w: %w", ErrSourceFailure, err)
	}

	return err
}

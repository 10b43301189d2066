package graph

import (
	"fmt"

	"github.com/hupe1980/pcstgo/model"
)

// MalformedInputError indicates input that can never produce a graph:
// a missing required field, an invalid cost, or zero edge rows. It is fatal;
// no partial graph is ever produced.
type MalformedInputError struct {
	// Row is the 1-based input row number, or 0 when the defect is not tied
	// to a single row (e.g. an empty edge stream).
	Row    int
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("malformed input: %s", e.Reason)
	}
	return fmt.Sprintf("malformed input: row %d: %s", e.Row, e.Reason)
}

// UnknownIdentifierError indicates an external identifier that does not
// resolve against the edge-derived registry. It is fatal for a named root;
// prize rows with unknown identifiers are silently skipped instead.
type UnknownIdentifierError struct {
	Key  model.Key
	Role string
}

func (e *UnknownIdentifierError) Error() string {
	return fmt.Sprintf("unknown %s identifier %q", e.Role, e.Key.Canonical())
}

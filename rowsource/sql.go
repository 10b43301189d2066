package rowsource

import (
	"context"
	"database/sql"
	"fmt"
	"iter"

	"github.com/hupe1980/pcstgo/model"
)

// SQLEdgeSource runs an edge query against a database/sql handle. The query
// must yield exactly four columns: edge id, source id, target id, cost.
// Identifier columns may be of any scannable type; NULLs surface as invalid
// keys so the assembler applies its own fatality rules.
type SQLEdgeSource struct {
	DB    *sql.DB
	Query string
	Args  []any
}

// EdgeRows implements EdgeSource.
func (s *SQLEdgeSource) EdgeRows(ctx context.Context) iter.Seq2[EdgeRow, error] {
	return func(yield func(EdgeRow, error) bool) {
		rows, err := s.DB.QueryContext(ctx, s.Query, s.Args...)
		if err != nil {
			yield(EdgeRow{}, WrapError("edges", err))
			return
		}
		defer rows.Close()

		cols, err := rows.Columns()
		if err != nil {
			yield(EdgeRow{}, WrapError("edges", err))
			return
		}
		if len(cols) != 4 {
			yield(EdgeRow{}, WrapError("edges",
				fmt.Errorf("edge query must yield 4 columns, got %d", len(cols))))
			return
		}

		for rows.Next() {
			var edge, source, target any
			var cost sql.NullFloat64
			if err := rows.Scan(&edge, &source, &target, &cost); err != nil {
				yield(EdgeRow{}, WrapError("edges", err))
				return
			}
			row := EdgeRow{
				Edge:   keyFromSQL(edge),
				Source: keyFromSQL(source),
				Target: keyFromSQL(target),
				Cost:   model.NullFloat{Float64: cost.Float64, Valid: cost.Valid},
			}
			if !yield(row, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(EdgeRow{}, WrapError("edges", err))
		}
	}
}

// SQLPrizeSource runs a prize query against a database/sql handle. The query
// must yield exactly two columns: node id, prize.
type SQLPrizeSource struct {
	DB    *sql.DB
	Query string
	Args  []any
}

// PrizeRows implements PrizeSource.
func (s *SQLPrizeSource) PrizeRows(ctx context.Context) iter.Seq2[PrizeRow, error] {
	return func(yield func(PrizeRow, error) bool) {
		rows, err := s.DB.QueryContext(ctx, s.Query, s.Args...)
		if err != nil {
			yield(PrizeRow{}, WrapError("prizes", err))
			return
		}
		defer rows.Close()

		cols, err := rows.Columns()
		if err != nil {
			yield(PrizeRow{}, WrapError("prizes", err))
			return
		}
		if len(cols) != 2 {
			yield(PrizeRow{}, WrapError("prizes",
				fmt.Errorf("prize query must yield 2 columns, got %d", len(cols))))
			return
		}

		for rows.Next() {
			var node any
			var prize sql.NullFloat64
			if err := rows.Scan(&node, &prize); err != nil {
				yield(PrizeRow{}, WrapError("prizes", err))
				return
			}
			row := PrizeRow{
				Node:  keyFromSQL(node),
				Prize: model.NullFloat{Float64: prize.Float64, Valid: prize.Valid},
			}
			if !yield(row, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(PrizeRow{}, WrapError("prizes", err))
		}
	}
}

// keyFromSQL converts a scanned identifier column to a Key. database/sql
// drivers deliver int64, string or []byte for identifier-like columns; NULL
// arrives as nil and maps to the invalid Key.
func keyFromSQL(v any) model.Key {
	switch t := v.(type) {
	case nil:
		return model.Key{}
	case int64:
		return model.Int64Key(t)
	case uint64:
		return model.Uint64Key(t)
	case string:
		return model.StringKey(t)
	case []byte:
		return model.BytesKey(t)
	default:
		// Uncommon driver types (e.g. time.Time) render to text.
		return model.StringKey(fmt.Sprint(t))
	}
}

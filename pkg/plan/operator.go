package plan

import (
	"fmt"

	"github.com/relq/relq/pkg/relation"
)

// Operator is an execution node in a query plan. Rows are pulled one
// at a time with Next; a nil row signals that the sequence is
// exhausted. Reset rewinds the operator and, recursively, its
// children so the sequence replays identically from the beginning.
// Schema returns the output column mask, fixed at construction.
type Operator interface {
	Next() (*relation.Row, error)
	Reset() error
	Schema() relation.Schema
	Children() []Operator
	Explain() string
}

// pull fetches the next row from a child and verifies its length
// against the child's declared schema. A mismatch aborts iteration
// rather than truncating or padding.
func pull(child Operator) (*relation.Row, error) {
	row, err := child.Next()
	if err != nil || row == nil {
		return row, err
	}
	if schema := child.Schema(); row.Len() != len(schema) {
		return nil, fmt.Errorf("row %s has %d fields, schema %s declares %d",
			row, row.Len(), schema, len(schema))
	}
	return row, nil
}

package plan

import (
	"fmt"

	"github.com/relq/relq/pkg/relation"
)

// MemScan is a leaf operator over rows already held in memory. It
// backs in-memory and file-loaded tables and serves as the row source
// in tests. Reset is O(1).
type MemScan struct {
	tag    string
	schema relation.Schema
	rows   []*relation.Row
	pos    int
}

// NewMemScan builds a scan over the given rows. Every row must match
// the schema length; a mismatch is a construction error.
func NewMemScan(tag string, schema relation.Schema, rows []*relation.Row) (*MemScan, error) {
	for _, row := range rows {
		if row.Len() != len(schema) {
			return nil, fmt.Errorf("scan %s: row %s has %d fields, schema %s declares %d",
				tag, row, row.Len(), schema, len(schema))
		}
	}
	return &MemScan{tag: tag, schema: schema, rows: rows}, nil
}

func (s *MemScan) Next() (*relation.Row, error) {
	if s.pos >= len(s.rows) {
		return nil, nil
	}
	row := s.rows[s.pos]
	s.pos++
	return row, nil
}

func (s *MemScan) Reset() error {
	s.pos = 0
	return nil
}

func (s *MemScan) Schema() relation.Schema { return s.schema }

func (s *MemScan) Children() []Operator { return nil }

func (s *MemScan) Explain() string {
	return fmt.Sprintf("Scan(%s, %d rows, %s)", s.tag, len(s.rows), s.schema)
}

package catalog

import (
	"fmt"

	"github.com/relq/relq/pkg/plan"
	"github.com/relq/relq/pkg/relation"
)

// ScanSpec describes how one query atom binds a table's columns: Mask
// names the columns the scan exposes (constant positions are
// anonymous), Consts pins positions to literal values, and Same lists
// position pairs bound to the same variable. Rows failing a Consts or
// Same constraint are filtered out during the scan.
type ScanSpec struct {
	Mask   relation.Schema
	Consts map[int]relation.Field
	Same   [][2]int
}

// validate checks the spec against a table's shape. All failures are
// construction-time errors.
func (s ScanSpec) validate(name string, kinds []relation.Kind) error {
	if len(s.Mask) != len(kinds) {
		return fmt.Errorf("table %q has %d columns, atom binds %d", name, len(kinds), len(s.Mask))
	}
	for pos, f := range s.Consts {
		if pos < 0 || pos >= len(kinds) {
			return fmt.Errorf("table %q: constant position %d out of range", name, pos)
		}
		if f.Kind() != kinds[pos] {
			return fmt.Errorf("table %q: column %d holds %s, constant %s is %s",
				name, pos, kinds[pos], f, f.Kind())
		}
	}
	for _, pair := range s.Same {
		for _, pos := range pair {
			if pos < 0 || pos >= len(kinds) {
				return fmt.Errorf("table %q: variable position %d out of range", name, pos)
			}
		}
	}
	return nil
}

// matches reports whether a raw table row satisfies the spec's
// constant and repeated-variable constraints.
func (s ScanSpec) matches(fields []relation.Field) bool {
	for pos, want := range s.Consts {
		if !fields[pos].Equals(want) {
			return false
		}
	}
	for _, pair := range s.Same {
		if !fields[pair[0]].Equals(fields[pair[1]]) {
			return false
		}
	}
	return true
}

// Table is a named relation the planner can scan.
type Table interface {
	// Kinds returns the column types, in order.
	Kinds() []relation.Kind
	// Scan builds a leaf operator exposing the rows that satisfy the
	// spec, under the spec's column mask.
	Scan(spec ScanSpec) (plan.Operator, error)
}

// MemTable holds rows in memory; tests and the REPL use it.
type MemTable struct {
	name  string
	kinds []relation.Kind
	rows  [][]relation.Field
}

// NewMemTable builds an in-memory table, validating every row against
// the declared column kinds.
func NewMemTable(name string, kinds []relation.Kind, rows [][]relation.Field) (*MemTable, error) {
	for _, row := range rows {
		if len(row) != len(kinds) {
			return nil, fmt.Errorf("table %q: row has %d fields, schema declares %d",
				name, len(row), len(kinds))
		}
		for i, f := range row {
			if f.Kind() != kinds[i] {
				return nil, fmt.Errorf("table %q: column %d holds %s, row value %s is %s",
					name, i, kinds[i], f, f.Kind())
			}
		}
	}
	return &MemTable{name: name, kinds: kinds, rows: rows}, nil
}

func (t *MemTable) Kinds() []relation.Kind { return t.kinds }

func (t *MemTable) Scan(spec ScanSpec) (plan.Operator, error) {
	if err := spec.validate(t.name, t.kinds); err != nil {
		return nil, err
	}
	var rows []*relation.Row
	for _, fields := range t.rows {
		if spec.matches(fields) {
			rows = append(rows, relation.NewRow(t.name, fields))
		}
	}
	return plan.NewMemScan(t.name, spec.Mask, rows)
}

package plan

import (
	"fmt"
	"strings"

	"github.com/relq/relq/pkg/predicate"
	"github.com/relq/relq/pkg/relation"
)

// Select filters a child's rows by a conjunction of predicates. Rows
// pass through unchanged, so the output schema is the child schema.
type Select struct {
	child Operator
	preds []predicate.Predicate
	conds []predicate.Condition
}

// NewSelect resolves every predicate against the child schema. A
// predicate naming an unknown column is a construction error.
func NewSelect(child Operator, preds []predicate.Predicate) (*Select, error) {
	conds := make([]predicate.Condition, 0, len(preds))
	for _, p := range preds {
		c, err := predicate.ResolveUnary(p, child.Schema())
		if err != nil {
			return nil, fmt.Errorf("select: %w", err)
		}
		conds = append(conds, c)
	}
	return &Select{child: child, preds: preds, conds: conds}, nil
}

func (s *Select) Next() (*relation.Row, error) {
	for {
		row, err := pull(s.child)
		if err != nil || row == nil {
			return row, err
		}
		if s.passes(row) {
			return row, nil
		}
	}
}

func (s *Select) passes(row *relation.Row) bool {
	for _, c := range s.conds {
		if !c.EvalRow(row) {
			return false
		}
	}
	return true
}

func (s *Select) Reset() error { return s.child.Reset() }

func (s *Select) Schema() relation.Schema { return s.child.Schema() }

func (s *Select) Children() []Operator { return []Operator{s.child} }

func (s *Select) Explain() string {
	parts := make([]string, len(s.preds))
	for i, p := range s.preds {
		parts[i] = p.String()
	}
	return fmt.Sprintf("Select(%s)", strings.Join(parts, ", "))
}

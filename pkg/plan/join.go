package plan

import (
	"fmt"
	"strings"

	"github.com/relq/relq/pkg/predicate"
	"github.com/relq/relq/pkg/relation"
)

// joinState tracks the join's resumable outer/inner iteration.
type joinState int

const (
	joinNoOuter joinState = iota
	joinHolding
	joinExhausted
)

// equiPair is an implicit equality constraint between a left-schema
// position and a right-schema position that share a column name.
type equiPair struct {
	left  int
	right int
}

// Join combines the rows of two children with a nested-loop scan: for
// every outer (left) row the inner (right) child's full sequence is
// replayed via Reset. Equality constraints implied by shared
// non-anonymous column names are discovered at construction and
// checked alongside the explicit predicates; right-side columns whose
// value is already represented in the output are dropped from the
// combined row.
type Join struct {
	left  Operator
	right Operator

	preds []predicate.Predicate
	conds []predicate.Condition

	equi     []equiPair
	dupRight map[int]bool
	schema   relation.Schema

	outer *relation.Row
	state joinState
}

// NewJoin resolves every explicit predicate against (left schema,
// right schema), discovers the implicit equality pairs, and computes
// the merged output schema. A predicate naming a column absent from
// both schemas is a construction error.
func NewJoin(left, right Operator, preds []predicate.Predicate) (*Join, error) {
	ls, rs := left.Schema(), right.Schema()

	j := &Join{
		left:     left,
		right:    right,
		preds:    preds,
		dupRight: make(map[int]bool),
	}

	for _, p := range preds {
		c, err := predicate.Resolve(p, ls, rs)
		if err != nil {
			return nil, fmt.Errorf("join: %w", err)
		}
		j.conds = append(j.conds, c)
	}

	// A non-anonymous left column sharing its name with a right column
	// implies an equality constraint between the two positions.
	// Anonymous columns never participate.
	for i, col := range ls {
		j.schema = append(j.schema, col)
		if col.Anonymous() {
			continue
		}
		if ri, ok := rs.IndexOf(col.Name()); ok {
			j.equi = append(j.equi, equiPair{left: i, right: ri})
		}
	}

	// Right columns whose name already appears in the accumulated
	// output schema are duplicates: their value is excluded from the
	// combined row and their name from the schema. Deriving both from
	// the same pass keeps row shape and schema length consistent.
	for ri, col := range rs {
		if col.Anonymous() {
			j.schema = append(j.schema, col)
			continue
		}
		if j.schema.Contains(col.Name()) {
			j.dupRight[ri] = true
		} else {
			j.schema = append(j.schema, col)
		}
	}

	return j, nil
}

// Next advances the nested loop. The held outer row is not replaced
// until the inner sequence is exhausted, so each outer row meets
// every inner row exactly once per reset epoch; matches are returned
// immediately and iteration resumes where it left off.
func (j *Join) Next() (*relation.Row, error) {
	if j.state == joinExhausted {
		return nil, nil
	}
	for {
		if j.state == joinNoOuter {
			outer, err := pull(j.left)
			if err != nil {
				return nil, err
			}
			if outer == nil {
				j.state = joinExhausted
				return nil, nil
			}
			j.outer = outer
			j.state = joinHolding
		}

		inner, err := pull(j.right)
		if err != nil {
			return nil, err
		}
		if inner == nil {
			// Inner sequence spent for this outer row; rewind it and
			// move the outer loop forward.
			if err := j.right.Reset(); err != nil {
				return nil, err
			}
			j.outer = nil
			j.state = joinNoOuter
			continue
		}

		if j.matches(j.outer, inner) {
			return j.combine(j.outer, inner), nil
		}
	}
}

// matches checks the implicit equality pairs first, then the explicit
// conditions, short-circuiting on the first failure.
func (j *Join) matches(outer, inner *relation.Row) bool {
	for _, pair := range j.equi {
		if !outer.Field(pair.left).Equals(inner.Field(pair.right)) {
			return false
		}
	}
	for _, c := range j.conds {
		if !c.Eval(outer, inner) {
			return false
		}
	}
	return true
}

// combine concatenates the outer row with the non-duplicate inner
// fields, in schema order.
func (j *Join) combine(outer, inner *relation.Row) *relation.Row {
	fields := make([]relation.Field, 0, len(j.schema))
	fields = append(fields, outer.Fields()...)
	for i := 0; i < inner.Len(); i++ {
		if !j.dupRight[i] {
			fields = append(fields, inner.Field(i))
		}
	}
	return relation.NewRow("Join", fields)
}

func (j *Join) Reset() error {
	if err := j.left.Reset(); err != nil {
		return err
	}
	if err := j.right.Reset(); err != nil {
		return err
	}
	j.outer = nil
	j.state = joinNoOuter
	return nil
}

func (j *Join) Schema() relation.Schema { return j.schema }

func (j *Join) Children() []Operator { return []Operator{j.left, j.right} }

func (j *Join) Explain() string {
	var parts []string
	for _, pair := range j.equi {
		left := j.left.Schema()[pair.left]
		parts = append(parts, left.Name())
	}
	implicit := strings.Join(parts, ", ")

	var explicit []string
	for _, p := range j.preds {
		explicit = append(explicit, p.String())
	}
	if len(explicit) > 0 {
		if implicit != "" {
			implicit += "; "
		}
		return fmt.Sprintf("Join(%s%s)", implicit, strings.Join(explicit, ", "))
	}
	return fmt.Sprintf("Join(%s)", implicit)
}

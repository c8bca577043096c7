package planner

import (
	"fmt"

	"github.com/relq/relq/pkg/catalog"
	"github.com/relq/relq/pkg/plan"
	"github.com/relq/relq/pkg/predicate"
	"github.com/relq/relq/pkg/query"
	"github.com/relq/relq/pkg/relation"
)

// Planner assembles operator trees from parsed programs against a
// catalog.
type Planner struct {
	cat *catalog.Catalog
}

// New creates a planner over the given catalog.
func New(cat *catalog.Catalog) *Planner {
	return &Planner{cat: cat}
}

// Build converts a program into an executable plan: a left-deep join
// chain over the body atoms in written order, with each comparison
// attached at the lowest operator where all of its variables are
// bound, and a final projection shaping the head. Atoms are never
// reordered.
func (p *Planner) Build(prog *query.Program) (plan.Operator, error) {
	atoms := prog.Atoms()
	if len(atoms) == 0 {
		return nil, fmt.Errorf("query body needs at least one relational atom")
	}

	comps := prog.Comparisons()
	attached := make([]bool, len(comps))

	current, err := p.scanFor(atoms[0])
	if err != nil {
		return nil, err
	}
	current, err = attachSelects(current, comps, attached)
	if err != nil {
		return nil, err
	}

	for _, atom := range atoms[1:] {
		right, err := p.scanFor(atom)
		if err != nil {
			return nil, err
		}
		right, err = attachSelects(right, comps, attached)
		if err != nil {
			return nil, err
		}

		var joinPreds []predicate.Predicate
		for i, c := range comps {
			if attached[i] {
				continue
			}
			if boundBy(c.Vars(), current.Schema(), right.Schema()) {
				pred, err := c.Predicate()
				if err != nil {
					return nil, err
				}
				joinPreds = append(joinPreds, pred)
				attached[i] = true
			}
		}

		current, err = plan.NewJoin(current, right, joinPreds)
		if err != nil {
			return nil, err
		}
	}

	for i, c := range comps {
		if !attached[i] {
			return nil, fmt.Errorf("comparison %s references a variable not bound by any atom", c)
		}
	}

	refs := make([]predicate.Operand, len(prog.Head.Terms))
	for i, t := range prog.Head.Terms {
		refs[i] = t.Operand()
	}
	return plan.NewProject(current, refs)
}

// scanFor turns one relational atom into a leaf scan: variables name
// columns, constants become anonymous columns pinned to their value,
// and a variable repeated within the atom keeps its first position's
// name while later positions stay anonymous and equality-constrained.
func (p *Planner) scanFor(atom *query.Atom) (plan.Operator, error) {
	table, err := p.cat.Table(atom.Name)
	if err != nil {
		return nil, err
	}

	spec := catalog.ScanSpec{
		Mask:   make(relation.Schema, len(atom.Terms)),
		Consts: make(map[int]relation.Field),
	}
	first := make(map[string]int)
	for i, t := range atom.Terms {
		if f, ok := t.Field(); ok {
			spec.Mask[i] = relation.Anon()
			spec.Consts[i] = f
			continue
		}
		name := *t.Var
		if prev, ok := first[name]; ok {
			spec.Mask[i] = relation.Anon()
			spec.Same = append(spec.Same, [2]int{prev, i})
		} else {
			first[name] = i
			spec.Mask[i] = relation.Col(name)
		}
	}
	return table.Scan(spec)
}

// attachSelects wraps op in a selection carrying every not yet
// attached comparison that op's schema alone can bind.
func attachSelects(op plan.Operator, comps []*query.Comparison, attached []bool) (plan.Operator, error) {
	var preds []predicate.Predicate
	for i, c := range comps {
		if attached[i] {
			continue
		}
		if boundBy(c.Vars(), op.Schema(), nil) {
			pred, err := c.Predicate()
			if err != nil {
				return nil, err
			}
			preds = append(preds, pred)
			attached[i] = true
		}
	}
	if len(preds) == 0 {
		return op, nil
	}
	return plan.NewSelect(op, preds)
}

func boundBy(vars []string, left, right relation.Schema) bool {
	for _, v := range vars {
		if !left.Contains(v) && !right.Contains(v) {
			return false
		}
	}
	return true
}

package plan

import (
	"fmt"
	"strings"

	"github.com/relq/relq/pkg/predicate"
	"github.com/relq/relq/pkg/relation"
)

// Project maps every child row onto an ordered list of output
// references, each a child column or a literal. It is a pure per-row
// transform: no filtering, no state between calls.
type Project struct {
	child    Operator
	refs     []predicate.Operand
	bindings []predicate.Binding
	schema   relation.Schema
}

// NewProject resolves each reference to a child-row position or a
// literal, using the same mechanism as predicate resolution. Literal
// references produce anonymous output columns.
func NewProject(child Operator, refs []predicate.Operand) (*Project, error) {
	bindings := make([]predicate.Binding, len(refs))
	schema := make(relation.Schema, len(refs))
	for i, ref := range refs {
		b, err := predicate.BindOperand(ref, child.Schema(), nil)
		if err != nil {
			return nil, fmt.Errorf("project: %w", err)
		}
		bindings[i] = b
		if name, ok := ref.Column(); ok {
			schema[i] = relation.Col(name)
		} else {
			schema[i] = relation.Anon()
		}
	}
	return &Project{child: child, refs: refs, bindings: bindings, schema: schema}, nil
}

func (p *Project) Next() (*relation.Row, error) {
	row, err := pull(p.child)
	if err != nil || row == nil {
		return row, err
	}
	fields := make([]relation.Field, len(p.bindings))
	for i, b := range p.bindings {
		fields[i] = b.Value(row, nil)
	}
	return relation.NewRow("Project", fields), nil
}

func (p *Project) Reset() error { return p.child.Reset() }

func (p *Project) Schema() relation.Schema { return p.schema }

func (p *Project) Children() []Operator { return []Operator{p.child} }

func (p *Project) Explain() string {
	parts := make([]string, len(p.refs))
	for i, ref := range p.refs {
		parts[i] = ref.String()
	}
	return fmt.Sprintf("Project(%s)", strings.Join(parts, ", "))
}

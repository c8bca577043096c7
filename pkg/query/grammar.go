package query

import (
	"fmt"
	"strings"

	"github.com/relq/relq/pkg/predicate"
	"github.com/relq/relq/pkg/relation"
)

// AST for the Participle parser. A query has the form
//
//	Q(x, y) :- R(x, y, z), z > 10, S(x, w)
//
// with a head atom, relational atoms naming catalog tables, and
// comparison atoms between terms.

type Program struct {
	Head *Atom       `parser:"@@ ':-'"`
	Body []*BodyItem `parser:"@@ (',' @@)*"`
}

type BodyItem struct {
	Atom       *Atom       `parser:"@@"`
	Comparison *Comparison `parser:"| @@"`
}

type Atom struct {
	Name  string  `parser:"@Ident"`
	Terms []*Term `parser:"'(' @@ (',' @@)* ')'"`
}

type Comparison struct {
	Left  *Term  `parser:"@@"`
	Op    string `parser:"@Operator"`
	Right *Term  `parser:"@@"`
}

// Term is a variable, an integer literal, or a single-quoted string
// literal.
type Term struct {
	Num *int64  `parser:"@Number"`
	Str *string `parser:"| @String"`
	Var *string `parser:"| @Ident"`
}

// IsVar reports whether the term is a variable.
func (t *Term) IsVar() bool { return t.Var != nil }

// Field returns the term's constant value; ok is false for variables.
func (t *Term) Field() (relation.Field, bool) {
	switch {
	case t.Num != nil:
		return relation.NewInt(*t.Num), true
	case t.Str != nil:
		return relation.NewString(strings.Trim(*t.Str, "'")), true
	}
	return relation.Field{}, false
}

// Operand maps the term to a predicate operand: variables become
// column references, constants become literals.
func (t *Term) Operand() predicate.Operand {
	if t.Var != nil {
		return predicate.NewColumn(*t.Var)
	}
	f, _ := t.Field()
	return predicate.NewLiteral(f)
}

func (t *Term) String() string {
	switch {
	case t.Var != nil:
		return *t.Var
	case t.Num != nil:
		return fmt.Sprintf("%d", *t.Num)
	case t.Str != nil:
		return "'" + strings.Trim(*t.Str, "'") + "'"
	}
	return "?"
}

// Vars returns the atom's variable names, in order, without
// duplicates.
func (a *Atom) Vars() []string {
	var vars []string
	seen := make(map[string]bool)
	for _, t := range a.Terms {
		if t.IsVar() && !seen[*t.Var] {
			seen[*t.Var] = true
			vars = append(vars, *t.Var)
		}
	}
	return vars
}

func (a *Atom) String() string {
	parts := make([]string, len(a.Terms))
	for i, t := range a.Terms {
		parts[i] = t.String()
	}
	return fmt.Sprintf("%s(%s)", a.Name, strings.Join(parts, ", "))
}

// Predicate converts the comparison into an unresolved predicate.
func (c *Comparison) Predicate() (predicate.Predicate, error) {
	op, err := predicate.OpFromString(c.Op)
	if err != nil {
		return predicate.Predicate{}, err
	}
	return predicate.New(c.Left.Operand(), op, c.Right.Operand()), nil
}

// Vars returns the variable names the comparison references.
func (c *Comparison) Vars() []string {
	var vars []string
	for _, t := range []*Term{c.Left, c.Right} {
		if t.IsVar() {
			vars = append(vars, *t.Var)
		}
	}
	return vars
}

func (c *Comparison) String() string {
	return fmt.Sprintf("%s %s %s", c.Left, c.Op, c.Right)
}

// Atoms returns the body's relational atoms, in written order.
func (p *Program) Atoms() []*Atom {
	var atoms []*Atom
	for _, item := range p.Body {
		if item.Atom != nil {
			atoms = append(atoms, item.Atom)
		}
	}
	return atoms
}

// Comparisons returns the body's comparison atoms, in written order.
func (p *Program) Comparisons() []*Comparison {
	var comps []*Comparison
	for _, item := range p.Body {
		if item.Comparison != nil {
			comps = append(comps, item.Comparison)
		}
	}
	return comps
}

func (p *Program) String() string {
	parts := make([]string, len(p.Body))
	for i, item := range p.Body {
		if item.Atom != nil {
			parts[i] = item.Atom.String()
		} else {
			parts[i] = item.Comparison.String()
		}
	}
	return fmt.Sprintf("%s :- %s", p.Head, strings.Join(parts, ", "))
}

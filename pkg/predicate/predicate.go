package predicate

import (
	"fmt"

	"github.com/relq/relq/pkg/relation"
)

// Op is one of the six comparison operators a predicate can apply.
type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

var opNames = [...]string{
	Eq: "=",
	Ne: "!=",
	Lt: "<",
	Le: "<=",
	Gt: ">",
	Ge: ">=",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// OpFromString maps query syntax to an Op.
func OpFromString(s string) (Op, error) {
	for op, name := range opNames {
		if name == s {
			return Op(op), nil
		}
	}
	return 0, fmt.Errorf("unknown comparison operator %q", s)
}

// Eval applies the comparison to two concrete fields.
func (o Op) Eval(a, b relation.Field) bool {
	switch o {
	case Eq:
		return a.Equals(b)
	case Ne:
		return !a.Equals(b)
	}
	c := a.Compare(b)
	switch o {
	case Lt:
		return c < 0
	case Le:
		return c <= 0
	case Gt:
		return c > 0
	default:
		return c >= 0
	}
}

// Operand is one side of an unresolved predicate: a reference to a
// named column, or a literal value.
type Operand struct {
	lit    *relation.Field
	column string
}

// NewColumn creates an operand referencing a named column.
func NewColumn(name string) Operand {
	return Operand{column: name}
}

// NewLiteral creates an operand carrying a literal value.
func NewLiteral(f relation.Field) Operand {
	return Operand{lit: &f}
}

// Column returns the referenced column name, if the operand is a
// column reference.
func (o Operand) Column() (string, bool) {
	if o.lit != nil {
		return "", false
	}
	return o.column, true
}

// Literal returns the carried value, if the operand is a literal.
func (o Operand) Literal() (relation.Field, bool) {
	if o.lit == nil {
		return relation.Field{}, false
	}
	return *o.lit, true
}

func (o Operand) String() string {
	if o.lit != nil {
		if o.lit.Kind() == relation.KindString {
			return "'" + o.lit.Text() + "'"
		}
		return o.lit.String()
	}
	return o.column
}

// Predicate is an unresolved comparison declared against column
// names. It must be resolved against concrete schemas before it can
// be evaluated.
type Predicate struct {
	Left  Operand
	Op    Op
	Right Operand
}

// New builds a predicate from two operands and a comparison operator.
func New(left Operand, op Op, right Operand) Predicate {
	return Predicate{Left: left, Op: op, Right: right}
}

func (p Predicate) String() string {
	return fmt.Sprintf("%s %s %s", p.Left, p.Op, p.Right)
}

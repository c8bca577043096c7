package predicate

import (
	"fmt"

	"github.com/relq/relq/pkg/relation"
)

// Side says where a resolved operand reads its value from.
type Side int

const (
	SideLiteral Side = iota
	SideLeft
	SideRight
)

// Binding is an operand bound to a literal value or to a position in
// one side's row. Binding happens once at operator construction;
// fetching a value afterwards is a plain index lookup.
type Binding struct {
	Side  Side
	Index int
	Lit   relation.Field
}

// BindOperand resolves an operand against a left and an optional
// right schema. Names are looked up left first, so a name present on
// both sides binds to the left row. An unresolvable name is a
// construction-time error.
func BindOperand(o Operand, left, right relation.Schema) (Binding, error) {
	if lit, ok := o.Literal(); ok {
		return Binding{Side: SideLiteral, Lit: lit}, nil
	}
	name, _ := o.Column()
	if i, ok := left.IndexOf(name); ok {
		return Binding{Side: SideLeft, Index: i}, nil
	}
	if i, ok := right.IndexOf(name); ok {
		return Binding{Side: SideRight, Index: i}, nil
	}
	return Binding{}, fmt.Errorf("column %q not found in any input schema", name)
}

// Value fetches the operand's concrete value for a candidate pairing.
func (b Binding) Value(left, right *relation.Row) relation.Field {
	switch b.Side {
	case SideLeft:
		return left.Field(b.Index)
	case SideRight:
		return right.Field(b.Index)
	default:
		return b.Lit
	}
}

// Condition is a predicate whose operands have been bound to row
// positions or literals, ready for repeated evaluation.
type Condition struct {
	Left  Binding
	Op    Op
	Right Binding
}

// Resolve binds a predicate against a left and a right schema.
func Resolve(p Predicate, left, right relation.Schema) (Condition, error) {
	l, err := BindOperand(p.Left, left, right)
	if err != nil {
		return Condition{}, err
	}
	r, err := BindOperand(p.Right, left, right)
	if err != nil {
		return Condition{}, err
	}
	return Condition{Left: l, Op: p.Op, Right: r}, nil
}

// ResolveUnary binds a predicate against a single schema.
func ResolveUnary(p Predicate, schema relation.Schema) (Condition, error) {
	return Resolve(p, schema, nil)
}

// Eval checks the condition against a (left, right) row pair.
func (c Condition) Eval(left, right *relation.Row) bool {
	return c.Op.Eval(c.Left.Value(left, right), c.Right.Value(left, right))
}

// EvalRow checks a unary condition against a single row.
func (c Condition) EvalRow(row *relation.Row) bool {
	return c.Eval(row, nil)
}

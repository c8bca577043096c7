package predicate

import (
	"testing"

	"github.com/relq/relq/pkg/relation"
	"github.com/stretchr/testify/require"
)

func TestOpEval(t *testing.T) {
	five := relation.NewInt(5)
	six := relation.NewInt(6)
	abc := relation.NewString("abc")
	abd := relation.NewString("abd")

	tests := []struct {
		name string
		op   Op
		a    relation.Field
		b    relation.Field
		want bool
	}{
		{"eq ints true", Eq, five, five, true},
		{"eq ints false", Eq, five, six, false},
		{"ne ints", Ne, five, six, true},
		{"lt ints", Lt, five, six, true},
		{"le equal", Le, five, five, true},
		{"gt ints", Gt, six, five, true},
		{"ge smaller", Ge, five, six, false},
		{"eq strings", Eq, abc, abc, true},
		{"lt strings", Lt, abc, abd, true},
		{"ge strings", Ge, abd, abc, true},
		{"eq across kinds is false", Eq, five, abc, false},
		{"ne across kinds is true", Ne, five, abc, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.op.Eval(tt.a, tt.b))
		})
	}
}

func TestOpFromString(t *testing.T) {
	for _, s := range []string{"=", "!=", "<", "<=", ">", ">="} {
		op, err := OpFromString(s)
		require.NoError(t, err)
		require.Equal(t, s, op.String())
	}

	_, err := OpFromString("<>")
	require.Error(t, err)
}

func TestBindOperandPrefersLeftSchema(t *testing.T) {
	left := relation.Schema{relation.Col("x"), relation.Col("shared")}
	right := relation.Schema{relation.Col("shared"), relation.Col("w")}

	b, err := BindOperand(NewColumn("shared"), left, right)
	require.NoError(t, err)
	require.Equal(t, SideLeft, b.Side)
	require.Equal(t, 1, b.Index)

	b, err = BindOperand(NewColumn("w"), left, right)
	require.NoError(t, err)
	require.Equal(t, SideRight, b.Side)
	require.Equal(t, 1, b.Index)
}

func TestBindOperandLiteral(t *testing.T) {
	b, err := BindOperand(NewLiteral(relation.NewInt(42)), nil, nil)
	require.NoError(t, err)
	require.Equal(t, SideLiteral, b.Side)
	require.Equal(t, int64(42), b.Lit.Int())
}

func TestBindOperandUnresolvableName(t *testing.T) {
	left := relation.Schema{relation.Col("x")}
	_, err := BindOperand(NewColumn("ghost"), left, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "ghost")
}

func TestConditionEvalAcrossSides(t *testing.T) {
	left := relation.Schema{relation.Col("a"), relation.Col("b")}
	right := relation.Schema{relation.Col("c")}

	cond, err := Resolve(New(NewColumn("b"), Lt, NewColumn("c")), left, right)
	require.NoError(t, err)

	lrow := relation.NewRow("l", []relation.Field{relation.NewInt(1), relation.NewInt(10)})
	rrow := relation.NewRow("r", []relation.Field{relation.NewInt(20)})
	require.True(t, cond.Eval(lrow, rrow))

	rrow = relation.NewRow("r", []relation.Field{relation.NewInt(5)})
	require.False(t, cond.Eval(lrow, rrow))
}

func TestResolveUnary(t *testing.T) {
	schema := relation.Schema{relation.Col("x"), relation.Col("y")}
	cond, err := ResolveUnary(New(NewColumn("y"), Ge, NewLiteral(relation.NewInt(10))), schema)
	require.NoError(t, err)

	require.True(t, cond.EvalRow(relation.NewRow("t", []relation.Field{relation.NewInt(0), relation.NewInt(10)})))
	require.False(t, cond.EvalRow(relation.NewRow("t", []relation.Field{relation.NewInt(0), relation.NewInt(9)})))
}

func TestResolveSkipsAnonymousColumns(t *testing.T) {
	schema := relation.Schema{relation.Anon(), relation.Col("x")}
	cond, err := ResolveUnary(New(NewColumn("x"), Eq, NewLiteral(relation.NewInt(1))), schema)
	require.NoError(t, err)
	require.Equal(t, 1, cond.Left.Index)
}

func TestPredicateString(t *testing.T) {
	p := New(NewColumn("x"), Ne, NewLiteral(relation.NewString("done")))
	require.Equal(t, "x != 'done'", p.String())

	p = New(NewColumn("y"), Le, NewLiteral(relation.NewInt(5)))
	require.Equal(t, "y <= 5", p.String())
}

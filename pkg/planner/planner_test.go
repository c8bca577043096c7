package planner

import (
	"strings"
	"testing"

	"github.com/relq/relq/pkg/catalog"
	"github.com/relq/relq/pkg/plan"
	"github.com/relq/relq/pkg/query"
	"github.com/relq/relq/pkg/relation"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := catalog.NewCatalog()

	r, err := catalog.NewMemTable("R",
		[]relation.Kind{relation.KindInt, relation.KindString, relation.KindInt},
		[][]relation.Field{
			{relation.NewInt(1), relation.NewString("a"), relation.NewInt(10)},
			{relation.NewInt(2), relation.NewString("b"), relation.NewInt(20)},
		})
	require.NoError(t, err)
	cat.Register("R", r)

	s, err := catalog.NewMemTable("S",
		[]relation.Kind{relation.KindInt, relation.KindString},
		[][]relation.Field{
			{relation.NewInt(1), relation.NewString("p")},
			{relation.NewInt(3), relation.NewString("q")},
		})
	require.NoError(t, err)
	cat.Register("S", s)

	return cat
}

func buildAndRun(t *testing.T, cat *catalog.Catalog, input string) []*relation.Row {
	t.Helper()
	prog, err := query.Parse(input)
	require.NoError(t, err)

	op, err := New(cat).Build(prog)
	require.NoError(t, err)

	var out []*relation.Row
	for {
		row, err := op.Next()
		require.NoError(t, err)
		if row == nil {
			return out
		}
		out = append(out, row)
	}
}

func TestBuildSingleAtom(t *testing.T) {
	rows := buildAndRun(t, testCatalog(t), "Q(x, y, z) :- R(x, y, z)")
	require.Len(t, rows, 2)
	require.Equal(t, "(1, a, 10)", rows[0].String())
	require.Equal(t, "(2, b, 20)", rows[1].String())
}

func TestBuildImplicitJoin(t *testing.T) {
	// shared variable x joins R and S; only R's first row has a partner
	rows := buildAndRun(t, testCatalog(t), "Q(x, y, z, w) :- R(x, y, z), S(x, w)")
	require.Len(t, rows, 1)
	require.Equal(t, "(1, a, 10, p)", rows[0].String())
}

func TestBuildSelectionPushedBelowJoin(t *testing.T) {
	cat := testCatalog(t)

	prog, err := query.Parse("Q(x, w) :- R(x, y, z), S(x, w), z > 15")
	require.NoError(t, err)

	op, err := New(cat).Build(prog)
	require.NoError(t, err)

	// z is bound by R alone, so the comparison becomes a selection
	// under the join rather than a join predicate
	tree := plan.Format(op)
	require.Contains(t, tree, "Select(z > 15)")
	require.Contains(t, tree, "Join(")
}

func TestBuildCrossAtomComparison(t *testing.T) {
	cat := catalog.NewCatalog()
	a, err := catalog.NewMemTable("A",
		[]relation.Kind{relation.KindInt, relation.KindInt},
		[][]relation.Field{
			{relation.NewInt(1), relation.NewInt(10)},
			{relation.NewInt(2), relation.NewInt(30)},
		})
	require.NoError(t, err)
	cat.Register("A", a)

	b, err := catalog.NewMemTable("B",
		[]relation.Kind{relation.KindInt},
		[][]relation.Field{
			{relation.NewInt(20)},
		})
	require.NoError(t, err)
	cat.Register("B", b)

	rows := buildAndRun(t, cat, "Q(u, v, w) :- A(u, v), B(w), v < w")
	require.Len(t, rows, 1)
	require.Equal(t, "(1, 10, 20)", rows[0].String())
}

func TestBuildConstantInAtom(t *testing.T) {
	// a constant term filters during the scan and exposes no column
	rows := buildAndRun(t, testCatalog(t), "Q(n) :- S(1, n)")
	require.Len(t, rows, 1)
	require.Equal(t, "(p)", rows[0].String())
}

func TestBuildRepeatedVariableInAtom(t *testing.T) {
	cat := catalog.NewCatalog()
	table, err := catalog.NewMemTable("P",
		[]relation.Kind{relation.KindInt, relation.KindInt},
		[][]relation.Field{
			{relation.NewInt(1), relation.NewInt(1)},
			{relation.NewInt(1), relation.NewInt(2)},
			{relation.NewInt(3), relation.NewInt(3)},
		})
	require.NoError(t, err)
	cat.Register("P", table)

	rows := buildAndRun(t, cat, "Q(x) :- P(x, x)")
	require.Len(t, rows, 2)
	require.Equal(t, "(1)", rows[0].String())
	require.Equal(t, "(3)", rows[1].String())
}

func TestBuildConstantInHead(t *testing.T) {
	rows := buildAndRun(t, testCatalog(t), "Q(x, 'flag') :- S(x, w)")
	require.Len(t, rows, 2)
	require.Equal(t, "(1, flag)", rows[0].String())
	require.Equal(t, "(3, flag)", rows[1].String())
}

func TestBuildErrors(t *testing.T) {
	cat := testCatalog(t)

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"unknown table", "Q(x) :- T(x)", "not found"},
		{"unbound comparison variable", "Q(x) :- R(x, y, z), q > 1", "not bound"},
		{"unbound head variable", "Q(missing) :- R(x, y, z)", "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := query.Parse(tt.input)
			require.NoError(t, err)

			_, err = New(cat).Build(prog)
			require.Error(t, err)
			require.True(t, strings.Contains(err.Error(), tt.wantErr),
				"error %q should mention %q", err, tt.wantErr)
		})
	}
}

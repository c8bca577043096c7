package query

import (
	"testing"

	"github.com/relq/relq/pkg/relation"
	"github.com/stretchr/testify/require"
)

func TestParseBasicQuery(t *testing.T) {
	prog, err := Parse("Q(x, y) :- R(x, y, z)")
	require.NoError(t, err)

	require.Equal(t, "Q", prog.Head.Name)
	require.Len(t, prog.Head.Terms, 2)
	require.True(t, prog.Head.Terms[0].IsVar())
	require.Equal(t, "x", *prog.Head.Terms[0].Var)

	atoms := prog.Atoms()
	require.Len(t, atoms, 1)
	require.Equal(t, "R", atoms[0].Name)
	require.Len(t, atoms[0].Terms, 3)
	require.Empty(t, prog.Comparisons())
}

func TestParseJoinWithComparison(t *testing.T) {
	prog, err := Parse("Q(x, w) :- R(x, y, z), S(x, w), z > 10")
	require.NoError(t, err)

	require.Len(t, prog.Atoms(), 2)
	comps := prog.Comparisons()
	require.Len(t, comps, 1)
	require.Equal(t, ">", comps[0].Op)
	require.True(t, comps[0].Left.IsVar())

	f, ok := comps[0].Right.Field()
	require.True(t, ok)
	require.Equal(t, int64(10), f.Int())
}

func TestParseConstantTerms(t *testing.T) {
	prog, err := Parse("Q(n) :- Emp(n, 'sales', s), s >= -5")
	require.NoError(t, err)

	atoms := prog.Atoms()
	require.Len(t, atoms, 1)

	f, ok := atoms[0].Terms[1].Field()
	require.True(t, ok)
	require.Equal(t, relation.KindString, f.Kind())
	require.Equal(t, "sales", f.Text())

	comps := prog.Comparisons()
	require.Len(t, comps, 1)
	f, ok = comps[0].Right.Field()
	require.True(t, ok)
	require.Equal(t, int64(-5), f.Int())
}

func TestParseComparisonBetweenVariables(t *testing.T) {
	prog, err := Parse("Q(a, c) :- R(a, b), S(c, d), b != d")
	require.NoError(t, err)

	comps := prog.Comparisons()
	require.Len(t, comps, 1)
	require.Equal(t, []string{"b", "d"}, comps[0].Vars())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"missing body", "Q(x) :-"},
		{"missing turnstile", "Q(x) R(x)"},
		{"no relational atom", "Q(x) :- x > 1"},
		{"unterminated atom", "Q(x) :- R(x"},
		{"bad operator", "Q(x) :- R(x), x ~ 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
		})
	}
}

func TestProgramString(t *testing.T) {
	prog, err := Parse("Q(x) :- R(x, y), y >= 3, S(y, 'done')")
	require.NoError(t, err)
	require.Equal(t, "Q(x) :- R(x, y), y >= 3, S(y, 'done')", prog.String())
}

func TestAtomVars(t *testing.T) {
	prog, err := Parse("Q(x) :- R(x, 1, y, x)")
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y"}, prog.Atoms()[0].Vars())
}

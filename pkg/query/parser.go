package query

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer definition
var (
	queryLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Number", Pattern: `[-+]?\d+`},
		{Name: "String", Pattern: `'[^']*'`},
		{Name: "Turnstile", Pattern: `:-`},
		{Name: "Operator", Pattern: `>=|<=|!=|[=<>]`},
		{Name: "Punct", Pattern: `[(),]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	// Participle parser
	queryParser = participle.MustBuild[Program](
		participle.Lexer(queryLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2), // Ident starts both atoms and comparisons
	)
)

// Parse parses a conjunctive query of the form `Head :- Body`.
func Parse(input string) (*Program, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty query")
	}

	prog, err := queryParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	if len(prog.Atoms()) == 0 {
		return nil, fmt.Errorf("query body needs at least one relational atom")
	}
	return prog, nil
}

package relation

import "strings"

// Column is one entry of a schema: a logical name, or the anonymous
// marker used for constants and don't-care positions. Anonymity is a
// state of its own rather than a reserved name: two anonymous columns
// never denote the same logical value, so they never match each other
// in name lookups.
type Column struct {
	name string
	anon bool
}

// Col creates a named column.
func Col(name string) Column { return Column{name: name} }

// Anon creates an anonymous column.
func Anon() Column { return Column{anon: true} }

// Name returns the column's logical name; empty when anonymous.
func (c Column) Name() string { return c.name }

// Anonymous reports whether the column carries no logical name.
func (c Column) Anonymous() bool { return c.anon }

func (c Column) String() string {
	if c.anon {
		return "_"
	}
	return c.name
}

// Schema is the ordered column mask an operator exposes. Its length
// equals the length of every row the operator yields, and it is fixed
// for the operator's lifetime.
type Schema []Column

// IndexOf returns the position of the first column with the given
// name. Anonymous columns are never matched.
func (s Schema) IndexOf(name string) (int, bool) {
	for i, c := range s {
		if !c.anon && c.name == name {
			return i, true
		}
	}
	return 0, false
}

// Contains reports whether a named column exists in the schema.
func (s Schema) Contains(name string) bool {
	_, ok := s.IndexOf(name)
	return ok
}

func (s Schema) String() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

package relation

import (
	"fmt"
	"strconv"
)

// Kind identifies the scalar type a Field holds.
type Kind int

const (
	KindInt Kind = iota
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindString:
		return "string"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindFromString maps a schema-file type name to a Kind.
func KindFromString(s string) (Kind, error) {
	switch s {
	case "int":
		return KindInt, nil
	case "string":
		return KindString, nil
	}
	return 0, fmt.Errorf("unknown column type %q", s)
}

// Field is a single bound scalar value, immutable once constructed.
// Fields are totally ordered: integers compare numerically, strings
// lexicographically, and every integer orders before every string.
// Fields of different kinds are never equal.
type Field struct {
	kind Kind
	i    int64
	s    string
}

// NewInt creates an integer field.
func NewInt(v int64) Field {
	return Field{kind: KindInt, i: v}
}

// NewString creates a string field.
func NewString(v string) Field {
	return Field{kind: KindString, s: v}
}

func (f Field) Kind() Kind { return f.kind }

// Int returns the integer value; meaningful only when Kind is KindInt.
func (f Field) Int() int64 { return f.i }

// Text returns the string value; meaningful only when Kind is KindString.
func (f Field) Text() string { return f.s }

// Compare returns -1, 0 or 1 ordering f against other.
func (f Field) Compare(other Field) int {
	if f.kind != other.kind {
		if f.kind < other.kind {
			return -1
		}
		return 1
	}
	switch f.kind {
	case KindInt:
		switch {
		case f.i < other.i:
			return -1
		case f.i > other.i:
			return 1
		}
		return 0
	default:
		switch {
		case f.s < other.s:
			return -1
		case f.s > other.s:
			return 1
		}
		return 0
	}
}

// Equals reports whether both fields hold the same kind and value.
func (f Field) Equals(other Field) bool {
	return f.kind == other.kind && f.Compare(other) == 0
}

func (f Field) String() string {
	if f.kind == KindInt {
		return strconv.FormatInt(f.i, 10)
	}
	return f.s
}

// Value returns the field as a plain Go value, for JSON output.
func (f Field) Value() interface{} {
	if f.kind == KindInt {
		return f.i
	}
	return f.s
}

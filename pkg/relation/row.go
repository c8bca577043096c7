package relation

import "strings"

// Row is one tuple of field values flowing between operators. The Tag
// records which operator produced the row; it is a debugging label
// with no semantic role. Rows are value objects: a producing operator
// constructs a fresh Row per pull and never touches it again.
type Row struct {
	Tag    string
	fields []Field
}

// NewRow builds a row from a copy of the given fields.
func NewRow(tag string, fields []Field) *Row {
	fs := make([]Field, len(fields))
	copy(fs, fields)
	return &Row{Tag: tag, fields: fs}
}

// Len returns the number of fields in the row.
func (r *Row) Len() int { return len(r.fields) }

// Field returns the field at position i.
func (r *Row) Field(i int) Field { return r.fields[i] }

// Fields returns a copy of the row's fields.
func (r *Row) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Equals reports whether two rows hold the same field sequence. Tags
// are ignored.
func (r *Row) Equals(other *Row) bool {
	if r.Len() != other.Len() {
		return false
	}
	for i, f := range r.fields {
		if !f.Equals(other.fields[i]) {
			return false
		}
	}
	return true
}

func (r *Row) String() string {
	parts := make([]string, len(r.fields))
	for i, f := range r.fields {
		parts[i] = f.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/relq/relq/pkg/plan"
	"github.com/relq/relq/pkg/relation"
)

// CSVTable reads rows from a comma-separated file, one line per row.
// Column kinds come from the catalog schema file; string values may
// be single-quoted. The file is parsed once per scan and served from
// memory, so the resulting operator resets in O(1).
type CSVTable struct {
	name  string
	path  string
	kinds []relation.Kind
}

// NewCSVTable declares a CSV-backed table. The file must exist.
func NewCSVTable(name, path string, kinds []relation.Kind) (*CSVTable, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("table %q: %w", name, err)
	}
	return &CSVTable{name: name, path: path, kinds: kinds}, nil
}

func (t *CSVTable) Kinds() []relation.Kind { return t.kinds }

func (t *CSVTable) Scan(spec ScanSpec) (plan.Operator, error) {
	if err := spec.validate(t.name, t.kinds); err != nil {
		return nil, err
	}

	f, err := os.Open(t.path)
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", t.name, err)
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.TrimLeadingSpace = true
	rd.FieldsPerRecord = len(t.kinds)

	records, err := rd.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", t.name, err)
	}

	var rows []*relation.Row
	for _, record := range records {
		fields, err := t.parseRecord(record)
		if err != nil {
			return nil, err
		}
		if spec.matches(fields) {
			rows = append(rows, relation.NewRow(t.name, fields))
		}
	}
	return plan.NewMemScan(t.name, spec.Mask, rows)
}

func (t *CSVTable) parseRecord(record []string) ([]relation.Field, error) {
	fields := make([]relation.Field, len(record))
	for i, raw := range record {
		raw = strings.TrimSpace(raw)
		switch t.kinds[i] {
		case relation.KindInt:
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("table %q: column %d: %q is not an integer", t.name, i, raw)
			}
			fields[i] = relation.NewInt(v)
		default:
			fields[i] = relation.NewString(unquote(raw))
		}
	}
	return fields, nil
}

// unquote strips one matched pair of single quotes; inner quotes are
// part of the value.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return s
}

// LoadDir builds a catalog from a database directory. schema.txt
// declares one table per line as `name kind kind ...`, and each
// table's rows live in <name>.csv alongside it.
func LoadDir(dir string) (*Catalog, error) {
	data, err := os.ReadFile(filepath.Join(dir, "schema.txt"))
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	cat := NewCatalog()
	for lineNo, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			return nil, fmt.Errorf("load catalog: schema.txt line %d: want `name kind ...`, got %q",
				lineNo+1, line)
		}
		name := parts[0]
		kinds := make([]relation.Kind, len(parts)-1)
		for i, kw := range parts[1:] {
			k, err := relation.KindFromString(kw)
			if err != nil {
				return nil, fmt.Errorf("load catalog: table %q: %w", name, err)
			}
			kinds[i] = k
		}
		table, err := NewCSVTable(name, filepath.Join(dir, name+".csv"), kinds)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		cat.Register(name, table)
	}
	return cat, nil
}

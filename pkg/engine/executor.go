package engine

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/relq/relq/pkg/plan"
)

// Executor drains a plan and writes the produced rows.
type Executor struct {
	// Format selects the output encoding: "csv" (default) or "json".
	Format string
	// Header prepends a column-name row in csv mode.
	Header bool
	// Tag prefixes each csv row with the producing operator's tag.
	Tag bool
	// Pretty pads csv-mode output into aligned text columns.
	Pretty bool
}

// NewExecutor creates an executor with default settings.
func NewExecutor() *Executor {
	return &Executor{Format: "csv"}
}

// Run pulls every row from the plan and writes it to w.
func (e *Executor) Run(op plan.Operator, w io.Writer) error {
	switch e.Format {
	case "", "csv":
		if e.Pretty {
			return e.runPretty(op, w)
		}
		return e.runCSV(op, w)
	case "json":
		return e.runJSON(op, w)
	}
	return fmt.Errorf("unknown output format %q", e.Format)
}

// runPretty materializes the result to compute column widths, then
// left-pads every cell to its column's widest value.
func (e *Executor) runPretty(op plan.Operator, w io.Writer) error {
	var records [][]string
	if e.Header {
		schema := op.Schema()
		header := make([]string, 0, len(schema)+1)
		if e.Tag {
			header = append(header, "tag")
		}
		for _, col := range schema {
			header = append(header, col.String())
		}
		records = append(records, header)
	}

	for {
		row, err := op.Next()
		if err != nil {
			return err
		}
		if row == nil {
			break
		}
		record := make([]string, 0, row.Len()+1)
		if e.Tag {
			record = append(record, row.Tag)
		}
		for i := 0; i < row.Len(); i++ {
			record = append(record, row.Field(i).String())
		}
		records = append(records, record)
	}

	widths := columnWidths(records)
	for _, record := range records {
		parts := make([]string, len(record))
		for i, cell := range record {
			if i == len(record)-1 {
				// no trailing padding on the last column
				parts[i] = cell
			} else {
				parts[i] = cell + strings.Repeat(" ", widths[i]-len(cell))
			}
		}
		if _, err := fmt.Fprintln(w, strings.Join(parts, "  ")); err != nil {
			return err
		}
	}
	return nil
}

func columnWidths(records [][]string) []int {
	var widths []int
	for _, record := range records {
		for i, cell := range record {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

func (e *Executor) runCSV(op plan.Operator, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if e.Header {
		schema := op.Schema()
		header := make([]string, 0, len(schema)+1)
		if e.Tag {
			header = append(header, "tag")
		}
		for _, col := range schema {
			header = append(header, col.String())
		}
		if err := cw.Write(header); err != nil {
			return err
		}
	}

	for {
		row, err := op.Next()
		if err != nil {
			return err
		}
		if row == nil {
			break
		}
		record := make([]string, 0, row.Len()+1)
		if e.Tag {
			record = append(record, row.Tag)
		}
		for i := 0; i < row.Len(); i++ {
			record = append(record, row.Field(i).String())
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func (e *Executor) runJSON(op plan.Operator, w io.Writer) error {
	encoder := json.NewEncoder(w)

	for {
		row, err := op.Next()
		if err != nil {
			return err
		}
		if row == nil {
			return nil
		}
		values := make([]interface{}, row.Len())
		for i := 0; i < row.Len(); i++ {
			values[i] = row.Field(i).Value()
		}
		if err := encoder.Encode(values); err != nil {
			return err
		}
	}
}

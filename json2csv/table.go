package json2csv

import (
	"encoding/csv"
	"io"
	"strconv"

	j "github.com/goccy/go-json"
)

// Table is an ordered, row-oriented dataset. Missing cells are nil.
type Table struct {
	Columns []string
	Rows    [][]any
}

func newTable(columns []string, rows []row) *Table {
	t := &Table{Columns: columns, Rows: make([][]any, 0, len(rows))}
	for _, r := range rows {
		out := make([]any, len(columns))
		for i, c := range columns {
			out[i] = r[c]
		}
		t.Rows = append(t.Rows, out)
	}
	return t
}

func (t *Table) Len() int { return len(t.Rows) }

func (t *Table) index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns the values of the named column, or nil if it does not exist.
func (t *Table) Column(name string) []any {
	i := t.index(name)
	if i < 0 {
		return nil
	}
	out := make([]any, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out
}

// Value returns the cell at row r in column name.
func (t *Table) Value(r int, name string) (any, bool) {
	i := t.index(name)
	if i < 0 || r < 0 || r >= len(t.Rows) {
		return nil, false
	}
	return t.Rows[r][i], true
}

// WriteCSV writes a header line followed by one record per row. Nil cells are
// empty, nested values are written as JSON.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	rec := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, v := range row {
			s, err := formatCell(v)
			if err != nil {
				return err
			}
			rec[i] = s
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCell(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(x), nil
	}
	b, err := j.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

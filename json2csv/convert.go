// Package json2csv flattens ASM documents into tables. A MapperConfig names
// datasets as lists of column paths; pivot and join transforms reshape them
// before the columns are ordered as configured.
package json2csv

import (
	"sort"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"

	asmkit "github.com/reoring/asmkit"
	"github.com/reoring/asmkit/internal/logging"
)

// Output is the result for one dataset: a Table, or Metadata for datasets
// flagged IsMetadata.
type Output struct {
	Table    *Table
	Metadata map[string]any
}

// Convert maps doc to one Output per included dataset. Every failure is an
// asmkit value error.
func Convert(doc map[string]any, cfg *MapperConfig) (map[string]Output, error) {
	if cfg == nil {
		return nil, asmkit.ValueError(asmkit.CodeInvalidConfig, "mapper config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logging.Or(cfg.Logger, "json2csv")

	byName := make(map[string]*dataset, len(cfg.Datasets))
	for _, dc := range cfg.Datasets {
		rows, err := newFlattener(dc, cfg.MaxRows).flatten(doc)
		if err != nil {
			return nil, err
		}
		ds := &dataset{cfg: dc, rows: rows}
		for _, c := range dc.Columns {
			ds.slots = append(ds.slots, &slot{col: c})
		}
		byName[dc.Name] = ds
		log.Debug("flattened dataset", "dataset", dc.Name, "rows", len(rows))
	}

	for _, tr := range cfg.Transforms {
		switch tr.Type {
		case TransformPivot:
			if err := pivot(byName[tr.Pivot.Dataset], tr.Pivot); err != nil {
				return nil, err
			}
		case TransformJoin:
			jc := tr.Join
			if err := join(byName[jc.Dataset1], byName[jc.Dataset2], jc); err != nil {
				return nil, err
			}
		}
	}

	out := make(map[string]Output, len(cfg.Datasets))
	for _, dc := range cfg.Datasets {
		if !dc.Included() {
			continue
		}
		ds := byName[dc.Name]
		cols, err := ds.layout()
		if err != nil {
			return nil, err
		}
		t := newTable(cols, ds.rows)
		if dc.IsMetadata {
			md, err := toMetadata(dc.Name, t)
			if err != nil {
				return nil, err
			}
			out[dc.Name] = Output{Metadata: md}
			continue
		}
		out[dc.Name] = Output{Table: t}
	}
	return out, nil
}

// layout checks required columns and returns the output column order.
func (d *dataset) layout() ([]string, error) {
	present := map[string]bool{}
	for _, r := range d.rows {
		for k := range r {
			present[k] = true
		}
	}
	var cols []string
	for _, s := range d.slots {
		if s.consumed {
			continue
		}
		names := s.expanded
		if names == nil {
			names = presentNames(s.col.Key(), present)
		}
		if len(names) == 0 && s.col.Required {
			return nil, asmkit.ValueError(asmkit.CodeMissingReference,
				"required column %q (path %q) missing from dataset %q", s.col.Key(), s.col.Path, d.cfg.Name)
		}
		if s.col.Included() {
			cols = append(cols, names...)
		}
	}
	return cols, nil
}

// presentNames finds key itself or its list expansions key.0, key.1, ...
func presentNames(key string, present map[string]bool) []string {
	if present[key] {
		return []string{key}
	}
	var idx []int
	for name := range present {
		rest, ok := strings.CutPrefix(name, key+".")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil {
			idx = append(idx, n)
		}
	}
	sort.Ints(idx)
	out := make([]string, 0, len(idx))
	for _, n := range idx {
		out = append(out, key+"."+strconv.Itoa(n))
	}
	return out
}

// toMetadata collapses a table to a single record. Values are normalized
// through JSON first; every column must hold at most one distinct value.
func toMetadata(name string, t *Table) (map[string]any, error) {
	b, err := j.Marshal(t.Rows)
	if err != nil {
		return nil, asmkit.Issue{Code: asmkit.CodeNotSingleValued, Message: "metadata dataset " + strconv.Quote(name) + " is not serializable", Cause: err}
	}
	var rows [][]any
	if err := j.Unmarshal(b, &rows); err != nil {
		return nil, asmkit.Issue{Code: asmkit.CodeNotSingleValued, Message: "metadata dataset " + strconv.Quote(name) + " is not serializable", Cause: err}
	}
	md := make(map[string]any, len(t.Columns))
	for ci, col := range t.Columns {
		var (
			val   any
			first string
		)
		for _, r := range rows {
			v := r[ci]
			if v == nil {
				continue
			}
			k, err := identity(v)
			if err != nil {
				return nil, err
			}
			if first == "" {
				first, val = k, v
				continue
			}
			if k != first {
				return nil, asmkit.ValueError(asmkit.CodeNotSingleValued,
					"metadata dataset %q: column %q has more than one value", name, col)
			}
		}
		md[col] = val
	}
	return md, nil
}

package json2csv

import (
	"fmt"
	"strconv"

	j "github.com/goccy/go-json"

	asmkit "github.com/reoring/asmkit"
)

// slot is one configured column of a working dataset and the output names it
// currently stands for.
type slot struct {
	col ColumnConfig
	// expanded lists pivot output names; nil until pivoted.
	expanded []string
	// consumed is set on a pivot label column.
	consumed bool
}

type dataset struct {
	cfg   DatasetConfig
	rows  []row
	slots []*slot
}

func (d *dataset) slotAt(path string) *slot {
	path = normalizePath(path)
	for _, s := range d.slots {
		if normalizePath(s.col.Path) == path {
			return s
		}
	}
	return nil
}

func (d *dataset) hasSlot(key string) bool {
	for _, s := range d.slots {
		if s.col.Key() == key {
			return true
		}
	}
	return false
}

// pivot groups rows by every other column and spreads the value column into
// one column per label.
func pivot(d *dataset, p *PivotTransformConfig) error {
	ls, vs := d.slotAt(p.LabelPath), d.slotAt(p.ValuePath)
	if ls == nil || vs == nil {
		return asmkit.ValueError(asmkit.CodeMissingReference, "pivot on dataset %q: label or value column missing", d.cfg.Name)
	}
	labelKey, valueKey := ls.col.Key(), vs.col.Key()

	var others []string
	seen := map[string]bool{labelKey: true, valueKey: true}
	for _, r := range d.rows {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				others = append(others, k)
			}
		}
	}

	type group struct {
		base row
		vals map[string]any
	}
	var (
		order   []string
		groups  = map[string]*group{}
		names   []string
		nameSet = map[string]bool{}
	)
	for _, r := range d.rows {
		gk, err := identity(pick(r, others))
		if err != nil {
			return err
		}
		g, ok := groups[gk]
		if !ok {
			g = &group{base: pick(r, others), vals: map[string]any{}}
			groups[gk] = g
			order = append(order, gk)
		}
		label, val := r[labelKey], r[valueKey]
		if label == nil || val == nil {
			continue
		}
		name := labelName(vs.col.Name, label)
		if prev, dup := g.vals[name]; dup {
			same, err := sameValue(prev, val)
			if err != nil {
				return err
			}
			if !same {
				return asmkit.ValueError(asmkit.CodeAmbiguousPivot,
					"pivot on dataset %q: column %q has conflicting values %v and %v in one group", d.cfg.Name, name, prev, val)
			}
			continue
		}
		g.vals[name] = val
		if !nameSet[name] {
			nameSet[name] = true
			names = append(names, name)
		}
	}

	rows := make([]row, 0, len(order))
	for _, gk := range order {
		g := groups[gk]
		r := make(row, len(g.base)+len(g.vals))
		for k, v := range g.base {
			r[k] = v
		}
		for k, v := range g.vals {
			r[k] = v
		}
		rows = append(rows, r)
	}
	d.rows = rows
	vs.expanded = names
	ls.consumed = true
	return nil
}

// join left-joins right onto left. Unmatched left rows are kept, right-only
// rows are dropped, and left values win on name clashes.
func join(left, right *dataset, jc *JoinTransformConfig) error {
	index := map[string][]row{}
	for _, r := range right.rows {
		v, ok := r[jc.Column2]
		if !ok || v == nil {
			continue
		}
		k, err := identity(v)
		if err != nil {
			return err
		}
		index[k] = append(index[k], r)
	}

	var out []row
	for _, l := range left.rows {
		var matches []row
		if v := l[jc.Column1]; v != nil {
			k, err := identity(v)
			if err != nil {
				return err
			}
			matches = index[k]
		}
		if len(matches) == 0 {
			out = append(out, l)
			continue
		}
		for _, m := range matches {
			r := make(row, len(l)+len(m))
			for k, v := range m {
				r[k] = v
			}
			for k, v := range l {
				r[k] = v
			}
			out = append(out, r)
		}
	}
	left.rows = out
	for _, s := range right.slots {
		if !left.hasSlot(s.col.Key()) {
			cp := *s
			left.slots = append(left.slots, &cp)
		}
	}
	return nil
}

func pick(r row, keys []string) row {
	out := make(row, len(keys))
	for _, k := range keys {
		out[k] = r[k]
	}
	return out
}

// identity is a stable comparison key for a decoded JSON value.
func identity(v any) (string, error) {
	b, err := j.Marshal(v)
	if err != nil {
		return "", asmkit.Issue{
			Code:    asmkit.CodeNotComparable,
			Message: fmt.Sprintf("json2csv: value %v is not comparable", v),
			Cause:   err,
		}
	}
	return string(b), nil
}

func sameValue(a, b any) (bool, error) {
	ka, err := identity(a)
	if err != nil {
		return false, err
	}
	kb, err := identity(b)
	if err != nil {
		return false, err
	}
	return ka == kb, nil
}

func labelName(t Template, label any) string {
	s := labelString(label)
	if !t.HasLabel() {
		return s
	}
	return t.Resolve(s)
}

func labelString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

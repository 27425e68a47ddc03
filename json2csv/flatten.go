package json2csv

import (
	"sort"
	"strconv"
	"strings"

	asmkit "github.com/reoring/asmkit"
)

// row maps column keys (or their list-expanded names) to values.
type row map[string]any

// flattener walks a document for one dataset. Only subtrees leading to a
// configured path are visited.
type flattener struct {
	dataset  string
	leaves   map[string][]string // path -> column keys
	prefixes map[string]bool
	maxRows  int
}

func newFlattener(ds DatasetConfig, maxRows int) *flattener {
	f := &flattener{
		dataset:  ds.Name,
		leaves:   map[string][]string{},
		prefixes: map[string]bool{"": true},
		maxRows:  maxRows,
	}
	for _, c := range ds.Columns {
		p := normalizePath(c.Path)
		f.leaves[p] = append(f.leaves[p], c.Key())
		parts := strings.Split(p, "/")
		for i := 1; i < len(parts); i++ {
			f.prefixes[strings.Join(parts[:i], "/")] = true
		}
	}
	return f
}

func (f *flattener) flatten(doc map[string]any) ([]row, error) {
	return f.walk(doc, "")
}

func (f *flattener) walk(node any, path string) ([]row, error) {
	keys, leaf := f.leaves[path]
	var out []row
	if leaf {
		out = leafRows(node, keys)
	}
	if !f.prefixes[path] {
		return out, nil
	}
	switch v := node.(type) {
	case map[string]any:
		inner, err := f.walkObject(v, path)
		if err != nil {
			return nil, err
		}
		return f.cross(out, inner)
	case []any:
		if leaf {
			return out, nil
		}
		// one row group per element
		var all []row
		for _, el := range v {
			rows, err := f.walk(el, path)
			if err != nil {
				return nil, err
			}
			all = append(all, rows...)
		}
		return all, nil
	}
	return out, nil
}

func (f *flattener) walkObject(obj map[string]any, path string) ([]row, error) {
	names := make([]string, 0, len(obj))
	for k := range obj {
		names = append(names, k)
	}
	sort.Strings(names)
	var acc []row
	for _, k := range names {
		child := k
		if path != "" {
			child = path + "/" + k
		}
		if _, ok := f.leaves[child]; !ok && !f.prefixes[child] {
			continue
		}
		rows, err := f.walk(obj[k], child)
		if err != nil {
			return nil, err
		}
		if acc, err = f.cross(acc, rows); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// cross combines sibling row groups. An empty side leaves the other as is.
func (f *flattener) cross(a, b []row) ([]row, error) {
	if len(a) == 0 {
		return b, nil
	}
	if len(b) == 0 {
		return a, nil
	}
	if n := len(a) * len(b); f.maxRows > 0 && n > f.maxRows {
		return nil, asmkit.ValueError(asmkit.CodeTooBig,
			"dataset %q: cross join of %d x %d rows exceeds max_rows %d", f.dataset, len(a), len(b), f.maxRows)
	}
	out := make([]row, 0, len(a)*len(b))
	for _, ra := range a {
		for _, rb := range b {
			r := make(row, len(ra)+len(rb))
			for k, v := range ra {
				r[k] = v
			}
			for k, v := range rb {
				r[k] = v
			}
			out = append(out, r)
		}
	}
	return out, nil
}

// leafRows turns the value at a column path into rows. A list of scalars is a
// vector column; a list of lists becomes sibling columns key.0, key.1, ...
func leafRows(node any, keys []string) []row {
	list, ok := node.([]any)
	if !ok {
		r := row{}
		for _, k := range keys {
			r[k] = node
		}
		return []row{r}
	}
	if isListOfLists(list) {
		n := 0
		for _, el := range list {
			n = max(n, len(el.([]any)))
		}
		out := make([]row, n)
		for i := range out {
			out[i] = row{}
		}
		for li, el := range list {
			inner := el.([]any)
			for _, k := range keys {
				name := k + "." + strconv.Itoa(li)
				for r := range out {
					if r < len(inner) {
						out[r][name] = inner[r]
					} else {
						out[r][name] = nil
					}
				}
			}
		}
		return out
	}
	out := make([]row, 0, len(list))
	for _, el := range list {
		r := row{}
		for _, k := range keys {
			r[k] = el
		}
		out = append(out, r)
	}
	return out
}

func isListOfLists(l []any) bool {
	if len(l) == 0 {
		return false
	}
	for _, el := range l {
		if _, ok := el.([]any); !ok {
			return false
		}
	}
	return true
}

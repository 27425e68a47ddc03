package json2csv

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	asmkit "github.com/reoring/asmkit"
)

type TransformType string

const (
	TransformJoin  TransformType = "join"
	TransformPivot TransformType = "pivot"
)

// MapperConfig describes every dataset to extract from a document and the
// transforms applied to them, in order.
type MapperConfig struct {
	Datasets   []DatasetConfig   `yaml:"datasets"`
	Transforms []TransformConfig `yaml:"transforms,omitempty"`
	// MaxRows bounds every intermediate sibling cross join. Zero disables the
	// guard.
	MaxRows int `yaml:"max_rows,omitempty"`
	// Logger receives debug output. Defaults to logging.New("json2csv").
	Logger *slog.Logger `yaml:"-"`
}

type DatasetConfig struct {
	Name       string         `yaml:"name"`
	Columns    []ColumnConfig `yaml:"columns"`
	IsMetadata bool           `yaml:"is_metadata,omitempty"`
	// Include=false keeps the dataset out of the output; it can still feed a
	// join. Defaults to true.
	Include *bool `yaml:"include,omitempty"`
}

func (d DatasetConfig) Included() bool { return d.Include == nil || *d.Include }

// Column returns the column whose name is key.
func (d DatasetConfig) Column(key string) (ColumnConfig, bool) {
	for _, c := range d.Columns {
		if c.Key() == key {
			return c, true
		}
	}
	return ColumnConfig{}, false
}

func (d DatasetConfig) columnAt(path string) (ColumnConfig, bool) {
	path = normalizePath(path)
	for _, c := range d.Columns {
		if normalizePath(c.Path) == path {
			return c, true
		}
	}
	return ColumnConfig{}, false
}

type ColumnConfig struct {
	// Path is a "/" separated key path from the document root; array
	// levels are implicit.
	Path string `yaml:"path"`
	// Name defaults to Path.
	Name     Template `yaml:"name,omitempty"`
	Required bool     `yaml:"required,omitempty"`
	// Include defaults to true.
	Include *bool `yaml:"include,omitempty"`
}

// Key is the column's identity within its dataset: the raw name template, or
// the path when unnamed.
func (c ColumnConfig) Key() string {
	if c.Name.IsZero() {
		return normalizePath(c.Path)
	}
	return c.Name.String()
}

func (c ColumnConfig) Included() bool { return c.Include == nil || *c.Include }

type TransformConfig struct {
	Type  TransformType         `yaml:"type"`
	Join  *JoinTransformConfig  `yaml:"join,omitempty"`
	Pivot *PivotTransformConfig `yaml:"pivot,omitempty"`
}

// JoinTransformConfig left-joins Dataset2 onto Dataset1 where
// Column1 == Column2. Columns are named by key.
type JoinTransformConfig struct {
	Dataset1 string `yaml:"dataset_1"`
	Dataset2 string `yaml:"dataset_2"`
	Column1  string `yaml:"column_1"`
	Column2  string `yaml:"column_2"`
}

// PivotTransformConfig spreads the values at ValuePath into one column per
// distinct label found at LabelPath.
type PivotTransformConfig struct {
	Dataset   string `yaml:"dataset"`
	LabelPath string `yaml:"label_path"`
	ValuePath string `yaml:"value_path"`
}

// LoadConfig reads and validates a YAML or JSON config file.
func LoadConfig(path string) (*MapperConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapper config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML (or JSON) and validates the result.
func ParseConfig(data []byte) (*MapperConfig, error) {
	var cfg MapperConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, asmkit.Issue{Code: asmkit.CodeInvalidConfig, Message: "failed to parse mapper config", Cause: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks names and every transform reference. All problems are
// reported together as asmkit.Issues.
func (c *MapperConfig) Validate() error {
	var iss asmkit.Issues
	root := asmkit.Pointer{}.Field("datasets")
	byName := map[string]DatasetConfig{}
	for i, ds := range c.Datasets {
		at := root.Index(i)
		if ds.Name == "" {
			iss = append(iss, invalid(at.Field("name"), "dataset name is empty"))
		} else if _, dup := byName[ds.Name]; dup {
			iss = append(iss, invalid(at.Field("name"), "duplicate dataset %q", ds.Name))
		} else {
			byName[ds.Name] = ds
		}
		if len(ds.Columns) == 0 {
			iss = append(iss, invalid(at.Field("columns"), "dataset %q has no columns", ds.Name))
		}
		seen := map[string]bool{}
		for j, col := range ds.Columns {
			cat := at.Field("columns").Index(j)
			if normalizePath(col.Path) == "" {
				iss = append(iss, invalid(cat.Field("path"), "column path is empty"))
				continue
			}
			if seen[col.Key()] {
				iss = append(iss, invalid(cat.Field("name"), "duplicate column %q in dataset %q", col.Key(), ds.Name))
			}
			seen[col.Key()] = true
		}
	}

	pivotValues := map[string]map[string]bool{}
	troot := asmkit.Pointer{}.Field("transforms")
	for i, tr := range c.Transforms {
		at := troot.Index(i)
		switch tr.Type {
		case TransformJoin:
			if tr.Join == nil {
				iss = append(iss, invalid(at.Field("join"), "join transform without join settings"))
				continue
			}
			j := tr.Join
			iss = append(iss, columnRef(byName, at.Field("join"), j.Dataset1, j.Column1)...)
			iss = append(iss, columnRef(byName, at.Field("join"), j.Dataset2, j.Column2)...)
			if j.Dataset1 == j.Dataset2 {
				iss = append(iss, invalid(at.Field("join"), "dataset %q cannot be joined to itself", j.Dataset1))
			}
		case TransformPivot:
			if tr.Pivot == nil {
				iss = append(iss, invalid(at.Field("pivot"), "pivot transform without pivot settings"))
				continue
			}
			p := tr.Pivot
			ds, ok := byName[p.Dataset]
			if !ok {
				iss = append(iss, missing(at.Field("pivot").Field("dataset"), "unknown dataset %q", p.Dataset))
				continue
			}
			if _, ok := ds.columnAt(p.LabelPath); !ok {
				iss = append(iss, missing(at.Field("pivot").Field("label_path"), "no column at path %q in dataset %q", p.LabelPath, p.Dataset))
			}
			if _, ok := ds.columnAt(p.ValuePath); !ok {
				iss = append(iss, missing(at.Field("pivot").Field("value_path"), "no column at path %q in dataset %q", p.ValuePath, p.Dataset))
			}
			if pivotValues[p.Dataset] == nil {
				pivotValues[p.Dataset] = map[string]bool{}
			}
			pivotValues[p.Dataset][normalizePath(p.ValuePath)] = true
		default:
			iss = append(iss, invalid(at.Field("type"), "unknown transform type %q", tr.Type))
		}
	}
	// Only pivot value columns have a label to substitute.
	for i, ds := range c.Datasets {
		for j, col := range ds.Columns {
			if col.Name.HasLabel() && !pivotValues[ds.Name][normalizePath(col.Path)] {
				at := root.Index(i).Field("columns").Index(j).Field("name")
				iss = append(iss, invalid(at, "column %q uses %s but is not the value of a pivot", col.Name.String(), Placeholder))
			}
		}
	}
	if c.MaxRows < 0 {
		iss = append(iss, invalid(asmkit.Pointer{}.Field("max_rows"), "max_rows must not be negative"))
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func columnRef(byName map[string]DatasetConfig, at asmkit.Pointer, dataset, column string) asmkit.Issues {
	ds, ok := byName[dataset]
	if !ok {
		return asmkit.Issues{missing(at, "unknown dataset %q", dataset)}
	}
	if _, ok := ds.Column(column); !ok {
		return asmkit.Issues{missing(at, "column %q not found in dataset %q", column, dataset)}
	}
	return nil
}

func invalid(at asmkit.Pointer, format string, args ...any) asmkit.Issue {
	return asmkit.ValueError(asmkit.CodeInvalidConfig, format, args...).WithPath(at)
}

func missing(at asmkit.Pointer, format string, args ...any) asmkit.Issue {
	return asmkit.ValueError(asmkit.CodeMissingReference, format, args...).WithPath(at)
}

func normalizePath(p string) string { return strings.Trim(strings.TrimSpace(p), "/") }

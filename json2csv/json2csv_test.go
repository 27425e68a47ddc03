package json2csv_test

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	asmkit "github.com/reoring/asmkit"
	"github.com/reoring/asmkit/json2csv"
)

func col(path, name string) json2csv.ColumnConfig {
	return json2csv.ColumnConfig{Path: path, Name: json2csv.ParseTemplate(name)}
}

func convertOne(t *testing.T, doc map[string]any, cfg *json2csv.MapperConfig, name string) *json2csv.Table {
	t.Helper()
	out, err := json2csv.Convert(doc, cfg)
	require.NoError(t, err)
	require.Contains(t, out, name)
	require.NotNil(t, out[name].Table)
	return out[name].Table
}

func TestConvert_NestedPath(t *testing.T) {
	doc := map[string]any{"a": map[string]any{"b": 1.0}}
	cfg := &json2csv.MapperConfig{Datasets: []json2csv.DatasetConfig{{
		Name:    "d",
		Columns: []json2csv.ColumnConfig{{Path: "a/b"}},
	}}}
	tbl := convertOne(t, doc, cfg, "d")
	assert.Equal(t, []string{"a/b"}, tbl.Columns)
	assert.Equal(t, [][]any{{1.0}}, tbl.Rows)
}

func TestConvert_ListsOfObjectsAndSiblings(t *testing.T) {
	doc := map[string]any{
		"run": "r1",
		"wells": []any{
			map[string]any{"id": "A1", "value": 1.0},
			map[string]any{"id": "A2", "value": 2.0},
		},
		"unrelated": []any{1.0, 2.0, 3.0},
	}
	cfg := &json2csv.MapperConfig{Datasets: []json2csv.DatasetConfig{{
		Name:    "wells",
		Columns: []json2csv.ColumnConfig{col("run", "Run"), col("wells/id", "Well"), col("wells/value", "Value")},
	}}}
	tbl := convertOne(t, doc, cfg, "wells")
	assert.Equal(t, []string{"Run", "Well", "Value"}, tbl.Columns)
	assert.Equal(t, [][]any{{"r1", "A1", 1.0}, {"r1", "A2", 2.0}}, tbl.Rows, "unconfigured subtrees must not multiply rows")
}

func TestConvert_VectorAndListOfLists(t *testing.T) {
	doc := map[string]any{
		"times":  []any{0.0, 1.0, 2.0},
		"traces": []any{[]any{10.0, 11.0, 12.0}, []any{20.0, 21.0}},
	}
	cfg := &json2csv.MapperConfig{Datasets: []json2csv.DatasetConfig{
		{Name: "v", Columns: []json2csv.ColumnConfig{col("times", "t")}},
		{Name: "l", Columns: []json2csv.ColumnConfig{col("traces", "trace")}},
	}}
	out, err := json2csv.Convert(doc, cfg)
	require.NoError(t, err)

	assert.Equal(t, []any{0.0, 1.0, 2.0}, out["v"].Table.Column("t"))

	l := out["l"].Table
	assert.Equal(t, []string{"trace.0", "trace.1"}, l.Columns)
	assert.Equal(t, []any{10.0, 11.0, 12.0}, l.Column("trace.0"))
	assert.Equal(t, []any{20.0, 21.0, nil}, l.Column("trace.1"))
}

func pivotDoc(conflict bool) map[string]any {
	s1 := []any{
		map[string]any{"wl": 450.0, "v": 1.0},
		map[string]any{"wl": 600.0, "v": 2.0},
	}
	if conflict {
		s1 = append(s1, map[string]any{"wl": 450.0, "v": 3.0})
	}
	return map[string]any{"groups": []any{
		map[string]any{"sample": "s1", "reads": s1},
		map[string]any{"sample": "s2", "reads": []any{
			map[string]any{"wl": 450.0, "v": 5.0},
			map[string]any{"wl": 600.0, "v": 6.0},
		}},
	}}
}

func pivotConfig() *json2csv.MapperConfig {
	return &json2csv.MapperConfig{
		Datasets: []json2csv.DatasetConfig{{
			Name: "reads",
			Columns: []json2csv.ColumnConfig{
				col("groups/sample", "Sample"),
				col("groups/reads/wl", "Wavelength"),
				col("groups/reads/v", "Absorbance $label$"),
			},
		}},
		Transforms: []json2csv.TransformConfig{{
			Type:  json2csv.TransformPivot,
			Pivot: &json2csv.PivotTransformConfig{Dataset: "reads", LabelPath: "groups/reads/wl", ValuePath: "groups/reads/v"},
		}},
	}
}

func TestConvert_Pivot(t *testing.T) {
	tbl := convertOne(t, pivotDoc(false), pivotConfig(), "reads")
	assert.Equal(t, []string{"Sample", "Absorbance 450", "Absorbance 600"}, tbl.Columns)
	assert.Equal(t, [][]any{{"s1", 1.0, 2.0}, {"s2", 5.0, 6.0}}, tbl.Rows)
}

func TestConvert_PivotConflict(t *testing.T) {
	_, err := json2csv.Convert(pivotDoc(true), pivotConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, asmkit.ErrValue))
	assert.Equal(t, asmkit.CodeAmbiguousPivot, asmkit.IssueCode(err))
}

func TestConvert_Join(t *testing.T) {
	doc := map[string]any{
		"samples": []any{
			map[string]any{"id": "a", "name": "A"},
			map[string]any{"id": "b", "name": "B"},
		},
		"results": []any{
			map[string]any{"sample_id": "a", "value": 1.0},
			map[string]any{"sample_id": "z", "value": 9.0},
		},
	}
	cfg := &json2csv.MapperConfig{
		Datasets: []json2csv.DatasetConfig{
			{Name: "samples", Columns: []json2csv.ColumnConfig{col("samples/id", "id"), col("samples/name", "name")}},
			{Name: "results", Columns: []json2csv.ColumnConfig{col("results/sample_id", "sample_id"), col("results/value", "value")}},
		},
		Transforms: []json2csv.TransformConfig{{
			Type: json2csv.TransformJoin,
			Join: &json2csv.JoinTransformConfig{Dataset1: "samples", Dataset2: "results", Column1: "id", Column2: "sample_id"},
		}},
	}
	out, err := json2csv.Convert(doc, cfg)
	require.NoError(t, err)

	tbl := out["samples"].Table
	assert.Equal(t, []string{"id", "name", "sample_id", "value"}, tbl.Columns)
	assert.Equal(t, [][]any{{"a", "A", "a", 1.0}, {"b", "B", nil, nil}}, tbl.Rows)
	assert.Equal(t, 2, out["results"].Table.Len(), "the right dataset is still emitted unchanged")
}

func TestConvert_JoinKeyNotComparable(t *testing.T) {
	doc := map[string]any{
		"samples": []any{map[string]any{"id": "a"}},
		"results": []any{map[string]any{"sample_id": math.NaN(), "value": 1.0}},
	}
	cfg := &json2csv.MapperConfig{
		Datasets: []json2csv.DatasetConfig{
			{Name: "samples", Columns: []json2csv.ColumnConfig{col("samples/id", "id")}},
			{Name: "results", Columns: []json2csv.ColumnConfig{col("results/sample_id", "sample_id"), col("results/value", "value")}},
		},
		Transforms: []json2csv.TransformConfig{{
			Type: json2csv.TransformJoin,
			Join: &json2csv.JoinTransformConfig{Dataset1: "samples", Dataset2: "results", Column1: "id", Column2: "sample_id"},
		}},
	}
	_, err := json2csv.Convert(doc, cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, asmkit.ErrValue))
	assert.Equal(t, asmkit.CodeNotComparable, asmkit.IssueCode(err))
}

func TestConvert_RequiredAndInclude(t *testing.T) {
	doc := map[string]any{"a": 1.0, "b": 2.0}
	hidden := false
	cfg := &json2csv.MapperConfig{Datasets: []json2csv.DatasetConfig{{
		Name: "d",
		Columns: []json2csv.ColumnConfig{
			{Path: "b", Name: json2csv.ParseTemplate("B")},
			{Path: "a", Name: json2csv.ParseTemplate("A"), Required: true, Include: &hidden},
		},
	}}}
	tbl := convertOne(t, doc, cfg, "d")
	assert.Equal(t, []string{"B"}, tbl.Columns)

	cfg.Datasets[0].Columns = append(cfg.Datasets[0].Columns, json2csv.ColumnConfig{Path: "missing", Required: true})
	_, err := json2csv.Convert(doc, cfg)
	require.Error(t, err)
	assert.Equal(t, asmkit.CodeMissingReference, asmkit.IssueCode(err))
}

func TestConvert_MaxRows(t *testing.T) {
	doc := map[string]any{"x": []any{1.0, 2.0, 3.0}, "y": []any{1.0, 2.0, 3.0}}
	cfg := &json2csv.MapperConfig{
		MaxRows: 8,
		Datasets: []json2csv.DatasetConfig{{
			Name:    "d",
			Columns: []json2csv.ColumnConfig{col("x", "x"), col("y", "y")},
		}},
	}
	_, err := json2csv.Convert(doc, cfg)
	require.Error(t, err)
	assert.Equal(t, asmkit.CodeTooBig, asmkit.IssueCode(err))

	cfg.MaxRows = 9
	tbl := convertOne(t, doc, cfg, "d")
	assert.Equal(t, 9, tbl.Len())
}

func TestConvert_Metadata(t *testing.T) {
	doc := map[string]any{
		"device": map[string]any{"model": "X1"},
		"items":  []any{map[string]any{"file": "f.csv"}, map[string]any{"file": "f.csv"}},
	}
	cfg := &json2csv.MapperConfig{Datasets: []json2csv.DatasetConfig{{
		Name:       "meta",
		IsMetadata: true,
		Columns:    []json2csv.ColumnConfig{col("device/model", "model"), col("items/file", "file")},
	}}}
	out, err := json2csv.Convert(doc, cfg)
	require.NoError(t, err)
	assert.Nil(t, out["meta"].Table)
	assert.Equal(t, map[string]any{"model": "X1", "file": "f.csv"}, out["meta"].Metadata)

	doc["items"] = []any{map[string]any{"file": "a.csv"}, map[string]any{"file": "b.csv"}}
	_, err = json2csv.Convert(doc, cfg)
	require.Error(t, err)
	assert.Equal(t, asmkit.CodeNotSingleValued, asmkit.IssueCode(err))
}

func TestTable_WriteCSV(t *testing.T) {
	tbl := &json2csv.Table{
		Columns: []string{"name", "value", "flag", "extra"},
		Rows:    [][]any{{"a,b", 1.5, true, nil}, {"c", 2.0, false, map[string]any{"k": 1.0}}},
	}
	var buf bytes.Buffer
	require.NoError(t, tbl.WriteCSV(&buf))
	assert.Equal(t, "name,value,flag,extra\n\"a,b\",1.5,true,\n"+`c,2,false,"{""k"":1}"`+"\n", buf.String())
}

func TestTemplate(t *testing.T) {
	tp := json2csv.ParseTemplate("Abs $label$ nm ($label$)")
	assert.True(t, tp.HasLabel())
	assert.Equal(t, "Abs 450 nm (450)", tp.Resolve("450"))
	assert.False(t, json2csv.ParseTemplate("plain").HasLabel())
	assert.Equal(t, "plain", json2csv.ParseTemplate("plain").Resolve("x"))
}

package cellcounting_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	asmkit "github.com/reoring/asmkit"
	"github.com/reoring/asmkit/mapper"
	"github.com/reoring/asmkit/mapper/cellcounting"
	"github.com/reoring/asmkit/values"
)

func sampleData() *cellcounting.Data {
	return &cellcounting.Data{
		Metadata: cellcounting.Metadata{
			ASMFileIdentifier: "run.csv",
			DeviceType:        "brightfield imager (cell counter)",
			ModelNumber:       "Vi-CELL BLU",
			SoftwareName:      values.Ptr("Vi-CELL BLU"),
		},
		MeasurementGroups: []cellcounting.MeasurementGroup{{
			AnalystName: values.Ptr("jdoe"),
			Measurements: []cellcounting.Measurement{{
				Identifier:        "m-1",
				Timestamp:         "2024-03-01 10:15:00",
				SampleIdentifier:  "S-1",
				Viability:         95.5,
				ViableCellDensity: 2.1,
				TotalCellCount:    values.Ptr(1200.0),
				DeadCellCount:     values.Ptr(0.0),
				CustomInfo:        map[string]any{"Dilution note": "none"},
			}},
		}},
		CalculatedData: []mapper.CalculatedDataItem{{
			Identifier:  "c-1",
			Name:        "average viability",
			Value:       95.5,
			Unit:        "%",
			DataSources: []mapper.DataSource{{Identifier: "m-1", Feature: "viability"}},
		}},
	}
}

func TestMapModel_Viability(t *testing.T) {
	model, err := cellcounting.Mapper{}.MapModel(sampleData())
	if err != nil {
		t.Fatalf("MapModel: %v", err)
	}
	if model.Manifest != cellcounting.Manifest {
		t.Fatalf("manifest %q", model.Manifest)
	}
	m := model.CellCountingAggregateDocument.CellCountingDocument[0].MeasurementAggregateDocument.MeasurementDocument[0]
	pd := m.ProcessedDataAggregateDocument.ProcessedDataDocument[0]
	if pd.Viability.Value != 95.5 || pd.Viability.Unit() != "%" {
		t.Fatalf("viability %v %s", pd.Viability.Value, pd.Viability.Unit())
	}
	if pd.DeadCellCount == nil || pd.DeadCellCount.Value != 0 {
		t.Fatalf("zero dead cell count must be kept, got %+v", pd.DeadCellCount)
	}
	if pd.ViableCellCount != nil {
		t.Fatalf("absent count must stay nil")
	}
	if m.MeasurementTime != "2024-03-01T10:15:00+00:00" {
		t.Fatalf("measurement time %q", m.MeasurementTime)
	}
	ds := model.CellCountingAggregateDocument.DataSystemDocument
	if ds.ASMConverterName != asmkit.ConverterName || ds.ASMConverterVersion != asmkit.ConverterVersion {
		t.Fatalf("converter fields not populated: %+v", ds)
	}
}

func TestMapModel_Idempotent(t *testing.T) {
	data := sampleData()
	mp := cellcounting.Mapper{}
	a, err := mp.MapModel(data)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	b, err := mp.MapModel(data)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if d := cmp.Diff(a, b); d != "" {
		t.Fatalf("models differ (-first +second):\n%s", d)
	}
}

func TestMapModel_JSONKeys(t *testing.T) {
	model, err := cellcounting.Mapper{Base: mapper.Base{ConverterName: "vicell"}}.MapModel(sampleData())
	if err != nil {
		t.Fatalf("MapModel: %v", err)
	}
	b, err := asmkit.Marshal(model)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, want := range []string{
		`"$asm.manifest":"` + cellcounting.Manifest + `"`,
		`"viability (cell counter)":{"value":95.5,"unit":"%"}`,
		`"ASM converter name":"vicell"`,
		`"calculated result":{"value":95.5,"unit":"%"}`,
		`"custom information document":{"Dilution note":"none"}`,
	} {
		if !strings.Contains(string(b), want) {
			t.Fatalf("missing %s in %s", want, b)
		}
	}
	if strings.Contains(string(b), "viable cell count") {
		t.Fatalf("nil optional fields must be omitted: %s", b)
	}
}

func TestMapModel_MissingSampleID(t *testing.T) {
	data := sampleData()
	data.MeasurementGroups[0].Measurements[0].SampleIdentifier = ""
	_, err := cellcounting.Mapper{}.MapModel(data)
	if !errors.Is(err, asmkit.ErrConversion) || asmkit.IssueCode(err) != asmkit.CodeRequired {
		t.Fatalf("expected required conversion error, got %v", err)
	}
}

func TestMapModel_DateTimeHook(t *testing.T) {
	called := 0
	mp := cellcounting.Mapper{Base: mapper.Base{DateTime: func(raw string) (asmkit.TDateTimeValue, error) {
		called++
		return "fixed", nil
	}}}
	model, err := mp.MapModel(sampleData())
	if err != nil {
		t.Fatalf("MapModel: %v", err)
	}
	got := model.CellCountingAggregateDocument.CellCountingDocument[0].MeasurementAggregateDocument.MeasurementDocument[0].MeasurementTime
	if called != 1 || got != "fixed" {
		t.Fatalf("hook not used: called=%d got=%q", called, got)
	}
}

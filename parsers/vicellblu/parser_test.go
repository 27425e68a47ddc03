package vicellblu_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	asmkit "github.com/reoring/asmkit"
	"github.com/reoring/asmkit/mapper/cellcounting"
	"github.com/reoring/asmkit/parsers/vicellblu"
)

const export = `Sample ID,Analysis date/time,Analysis by,Viability (%),Viable (x10^6) cells/mL,Total (x10^6) cells/mL,Total cells,Viable cells,Average diameter (μm),Cell type,Dilution,Images,Reagent lot
S-1,2024-03-01 10:15:00,jdoe,95.5,2.10,2.20,1000,955,11.2,CHO,1,100,R7
S-2,2024-03-01 10:20:00,jdoe,88,1.50,,,,,,,,R7
`

func TestParse(t *testing.T) {
	var buf bytes.Buffer
	p := vicellblu.Parser{AuditUnusedFields: true, Logger: slog.New(slog.NewTextHandler(&buf, nil))}
	data, err := p.Parse(strings.NewReader(export), "blu.csv")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(data.MeasurementGroups) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(data.MeasurementGroups))
	}
	m := data.MeasurementGroups[0].Measurements[0]
	if m.SampleIdentifier != "S-1" || m.Viability != 95.5 || m.ViableCellDensity != 2.1 {
		t.Fatalf("unexpected measurement %+v", m)
	}
	if m.DeadCellCount == nil || *m.DeadCellCount != 45 {
		t.Fatalf("dead cell count %v", m.DeadCellCount)
	}
	if m.Identifier == "" || m.Identifier == data.MeasurementGroups[1].Measurements[0].Identifier {
		t.Fatalf("measurement identifiers must be unique")
	}
	if d := cmp.Diff(map[string]any{"image count": int64(100)}, m.CustomInfo); d != "" {
		t.Fatalf("custom info (-want +got):\n%s", d)
	}

	m2 := data.MeasurementGroups[1].Measurements[0]
	if m2.TotalCellCount != nil || m2.DeadCellDensity != nil {
		t.Fatalf("blank cells must stay absent: %+v", m2)
	}
	if !strings.Contains(buf.String(), "Reagent lot") {
		t.Fatalf("expected audit warning naming the unmapped column, got %q", buf.String())
	}

	model, err := cellcounting.Mapper{}.MapModel(data)
	if err != nil {
		t.Fatalf("MapModel: %v", err)
	}
	pd := model.CellCountingAggregateDocument.CellCountingDocument[0].MeasurementAggregateDocument.MeasurementDocument[0].ProcessedDataAggregateDocument.ProcessedDataDocument[0]
	if pd.Viability.Value != 95.5 || pd.Viability.Unit() != "%" {
		t.Fatalf("viability %+v", pd.Viability)
	}
}

func TestParse_DiameterHeaderSpelling(t *testing.T) {
	for _, header := range []string{"Average diameter (\u00b5m)", "Average diameter (\u03bcm)"} {
		in := "Sample ID,Analysis date/time,Viability (%),Viable (x10^6) cells/mL," + header + "\nS-1,2024-03-01 10:15:00,95.5,2.1,11.2\n"
		data, err := vicellblu.Parser{}.Parse(strings.NewReader(in), "blu.csv")
		if err != nil {
			t.Fatalf("%q: Parse: %v", header, err)
		}
		d := data.MeasurementGroups[0].Measurements[0].AverageTotalCellDiameter
		if d == nil || *d != 11.2 {
			t.Fatalf("%q: average diameter %v", header, d)
		}
	}
}

func TestParse_MissingViability(t *testing.T) {
	in := "Sample ID,Analysis date/time,Viability (%),Viable (x10^6) cells/mL\nS-1,2024-03-01 10:15:00,,2.1\n"
	_, err := vicellblu.Parser{}.Parse(strings.NewReader(in), "bad.csv")
	if !errors.Is(err, asmkit.ErrConversion) || asmkit.IssueCode(err) != asmkit.CodeRequired {
		t.Fatalf("expected required conversion error, got %v", err)
	}
	if !strings.Contains(err.Error(), "row 1") {
		t.Fatalf("error should name the row: %v", err)
	}
}

func TestParse_Empty(t *testing.T) {
	if _, err := (vicellblu.Parser{}).Parse(strings.NewReader(""), "empty.csv"); err == nil {
		t.Fatalf("expected error for empty export")
	}
}

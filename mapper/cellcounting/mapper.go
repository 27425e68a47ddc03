// Package cellcounting maps cell counter results to the ASM cell-counting
// schema.
package cellcounting

import (
	"fmt"

	asmkit "github.com/reoring/asmkit"
	"github.com/reoring/asmkit/mapper"
	"github.com/reoring/asmkit/quantity"
)

const Manifest = "http://purl.allotrope.org/manifests/cell-counting/BENCHLING/2023/11/cell-counting.manifest"

// Mapper implements mapper.SchemaMapper[*Data, *Model].
type Mapper struct {
	mapper.Base
}

var _ mapper.SchemaMapper[*Data, *Model] = Mapper{}

func (m Mapper) MapModel(data *Data) (*Model, error) {
	if data == nil {
		return nil, asmkit.RequiredError("data", "")
	}
	md := data.Metadata
	if md.ModelNumber == "" {
		return nil, asmkit.RequiredError("model number", "")
	}
	groups := make([]CellCountingDocumentItem, 0, len(data.MeasurementGroups))
	for gi, g := range data.MeasurementGroups {
		docs := make([]MeasurementDocumentItem, 0, len(g.Measurements))
		for mi, ms := range g.Measurements {
			doc, err := m.mapMeasurement(md, ms)
			if err != nil {
				return nil, fmt.Errorf("measurement group %d, measurement %d: %w", gi, mi, err)
			}
			docs = append(docs, doc)
		}
		groups = append(groups, CellCountingDocumentItem{
			Analyst:                      g.AnalystName,
			MeasurementAggregateDocument: MeasurementAggregateDocument{MeasurementDocument: docs},
		})
	}
	calc, err := mapper.MapCalculatedData(data.CalculatedData)
	if err != nil {
		return nil, fmt.Errorf("calculated data: %w", err)
	}
	return &Model{
		Manifest: Manifest,
		CellCountingAggregateDocument: CellCountingAggregateDocument{
			DeviceSystemDocument: DeviceSystemDocument{
				ModelNumber:           md.ModelNumber,
				EquipmentSerialNumber: md.EquipmentSerialNumber,
				AssetManagementID:     md.AssetManagementID,
				DeviceIdentifier:      md.DeviceIdentifier,
				ProductManufacturer:   md.ProductManufacturer,
				BrandName:             md.BrandName,
			},
			DataSystemDocument:              m.DataSystem(nonEmpty(md.ASMFileIdentifier), md.UNCPath, md.SoftwareName, md.SoftwareVersion),
			CellCountingDocument:            groups,
			CalculatedDataAggregateDocument: calc,
		},
	}, nil
}

func (m Mapper) mapMeasurement(md Metadata, ms Measurement) (MeasurementDocumentItem, error) {
	if ms.Identifier == "" {
		return MeasurementDocumentItem{}, asmkit.RequiredError("measurement identifier", "")
	}
	if ms.SampleIdentifier == "" {
		return MeasurementDocumentItem{}, asmkit.RequiredError("sample identifier", "")
	}
	ts, err := m.GetDateTime(ms.Timestamp)
	if err != nil {
		return MeasurementDocumentItem{}, err
	}
	if md.DeviceType == "" {
		return MeasurementDocumentItem{}, asmkit.RequiredError("device type", "")
	}
	return MeasurementDocumentItem{
		MeasurementIdentifier: ms.Identifier,
		MeasurementTime:       ts,
		SampleDocument: SampleDocument{
			SampleIdentifier: ms.SampleIdentifier,
			BatchIdentifier:  ms.BatchIdentifier,
		},
		DeviceControlAggregateDocument: DeviceControlAggregateDocument{
			DeviceControlDocument: []DeviceControlDocumentItem{{
				DeviceType:    md.DeviceType,
				DetectionType: md.DetectionType,
			}},
		},
		ProcessedDataAggregateDocument: ProcessedDataAggregateDocument{
			ProcessedDataDocument: []ProcessedDataDocumentItem{processedData(ms)},
		},
		CustomInformationDocument: ms.CustomInfo,
	}, nil
}

func processedData(ms Measurement) ProcessedDataDocumentItem {
	item := ProcessedDataDocumentItem{
		ProcessedDataIdentifier:      ms.ProcessedDataIdentifier,
		Viability:                    quantity.New[quantity.Percent](ms.Viability),
		ViableCellDensity:            quantity.New[quantity.MillionCellsPerMilliliter](ms.ViableCellDensity),
		TotalCellCount:               quantity.OrNone[quantity.Cell](ms.TotalCellCount),
		ViableCellCount:              quantity.OrNone[quantity.Cell](ms.ViableCellCount),
		DeadCellCount:                quantity.OrNone[quantity.Cell](ms.DeadCellCount),
		TotalCellDensity:             quantity.OrNone[quantity.MillionCellsPerMilliliter](ms.TotalCellDensity),
		DeadCellDensity:              quantity.OrNone[quantity.MillionCellsPerMilliliter](ms.DeadCellDensity),
		AverageTotalCellDiameter:     quantity.OrNone[quantity.Micrometer](ms.AverageTotalCellDiameter),
		AverageLiveCellDiameter:      quantity.OrNone[quantity.Micrometer](ms.AverageLiveCellDiameter),
		AverageDeadCellDiameter:      quantity.OrNone[quantity.Micrometer](ms.AverageDeadCellDiameter),
		AverageTotalCellCircularity:  quantity.OrNone[quantity.Unitless](ms.AverageTotalCellCircularity),
		AverageViableCellCircularity: quantity.OrNone[quantity.Unitless](ms.AverageViableCellCircularity),
	}
	proc := DataProcessingDocument{
		CellTypeProcessingMethod:   ms.CellTypeProcessingMethod,
		CellDensityDilutionFactor:  quantity.OrNone[quantity.Unitless](ms.CellDensityDilutionFactor),
		MinimumCellDiameterSetting: quantity.OrNone[quantity.Micrometer](ms.MinimumCellDiameterSetting),
		MaximumCellDiameterSetting: quantity.OrNone[quantity.Micrometer](ms.MaximumCellDiameterSetting),
	}
	if proc != (DataProcessingDocument{}) {
		item.DataProcessingDocument = &proc
	}
	return item
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

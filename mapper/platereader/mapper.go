// Package platereader maps absorbance, fluorescence and luminescence plate
// reads to the ASM plate-reader schema.
package platereader

import (
	"fmt"

	asmkit "github.com/reoring/asmkit"
	"github.com/reoring/asmkit/mapper"
	"github.com/reoring/asmkit/quantity"
)

const (
	Manifest   = "http://purl.allotrope.org/manifests/plate-reader/REC/2024/06/plate-reader.manifest"
	DeviceType = "plate reader"
)

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
	docs := make([]PlateReaderDocumentItem, 0, len(data.MeasurementGroups))
	for gi, g := range data.MeasurementGroups {
		doc, err := m.mapGroup(g)
		if err != nil {
			return nil, fmt.Errorf("measurement group %d: %w", gi, err)
		}
		docs = append(docs, doc)
	}
	calc, err := mapper.MapCalculatedData(data.CalculatedData)
	if err != nil {
		return nil, fmt.Errorf("calculated data: %w", err)
	}
	var fileName *string
	if md.FileName != "" {
		fileName = &md.FileName
	}
	return &Model{
		Manifest: Manifest,
		PlateReaderAggregateDocument: PlateReaderAggregateDocument{
			DeviceSystemDocument: DeviceSystemDocument{
				ModelNumber:           md.ModelNumber,
				DeviceIdentifier:      md.DeviceIdentifier,
				EquipmentSerialNumber: md.EquipmentSerialNumber,
				ProductManufacturer:   md.ProductManufacturer,
			},
			DataSystemDocument:              m.DataSystem(fileName, md.UNCPath, md.SoftwareName, md.SoftwareVersion),
			PlateReaderDocument:             docs,
			CalculatedDataAggregateDocument: calc,
		},
	}, nil
}

func (m Mapper) mapGroup(g MeasurementGroup) (PlateReaderDocumentItem, error) {
	ts, err := m.GetDateTime(g.MeasurementTime)
	if err != nil {
		return PlateReaderDocumentItem{}, err
	}
	items := make([]MeasurementDocumentItem, 0, len(g.Measurements))
	for i, ms := range g.Measurements {
		item, err := mapMeasurement(ms)
		if err != nil {
			return PlateReaderDocumentItem{}, fmt.Errorf("measurement %d: %w", i, err)
		}
		items = append(items, item)
	}
	return PlateReaderDocumentItem{
		Analyst: g.AnalystName,
		MeasurementAggregateDocument: MeasurementAggregateDocument{
			MeasurementTime:     ts,
			PlateWellCount:      quantity.New[quantity.Number](g.PlateWellCount),
			MeasurementDocument: items,
		},
	}, nil
}

func mapMeasurement(ms Measurement) (MeasurementDocumentItem, error) {
	if ms.Identifier == "" {
		return MeasurementDocumentItem{}, asmkit.RequiredError("measurement identifier", "")
	}
	t, err := ParseMeasurementType(string(ms.Type))
	if err != nil {
		return MeasurementDocumentItem{}, err
	}
	ms.Type = t
	item := MeasurementDocumentItem{
		MeasurementIdentifier: ms.Identifier,
		SampleDocument: SampleDocument{
			SampleIdentifier:    ms.SampleIdentifier,
			LocationIdentifier:  ms.WellLocation,
			WellPlateIdentifier: ms.PlateIdentifier,
			BatchIdentifier:     ms.BatchIdentifier,
		},
		CustomInformationDocument: ms.CustomInfo,
	}
	ctrl := DeviceControlDocumentItem{
		DeviceType:             DeviceType,
		DetectionType:          ms.Type.DetectionType(),
		CompartmentTemperature: quantity.OrNone[quantity.DegreeCelsius](ms.CompartmentTemperature),
	}
	switch ms.Type {
	case Absorbance:
		item.Absorbance = &quantity.TQuantityValueMilliAbsorbanceUnit{Value: ms.Value}
		ctrl.DetectorWavelengthSetting = quantity.OrNone[quantity.Nanometer](ms.DetectorWavelengthSetting)
	case Fluorescence:
		item.Fluorescence = &quantity.TQuantityValueRelativeFluorescenceUnit{Value: ms.Value}
		ctrl.DetectorWavelengthSetting = quantity.OrNone[quantity.Nanometer](ms.DetectorWavelengthSetting)
		ctrl.ExcitationWavelengthSetting = quantity.OrNone[quantity.Nanometer](ms.ExcitationWavelengthSetting)
	case Luminescence:
		item.Luminescence = &quantity.TQuantityValueRelativeLightUnit{Value: ms.Value}
	}
	item.DeviceControlAggregateDocument = DeviceControlAggregateDocument{
		DeviceControlDocument: []DeviceControlDocumentItem{ctrl},
	}
	return item, nil
}

package platereader

import (
	"strings"

	asmkit "github.com/reoring/asmkit"
	"github.com/reoring/asmkit/mapper"
	"github.com/reoring/asmkit/values"
)

type MeasurementType string

const (
	Absorbance   MeasurementType = "ABSORBANCE"
	Fluorescence MeasurementType = "FLUORESCENCE"
	Luminescence MeasurementType = "LUMINESCENCE"
)

var measurementTypes = map[string]MeasurementType{
	"absorbance":   Absorbance,
	"fluorescence": Fluorescence,
	"luminescence": Luminescence,
}

// ParseMeasurementType accepts the vendor spelling of a read mode, case
// insensitively.
func ParseMeasurementType(s string) (MeasurementType, error) {
	if t, ok := measurementTypes[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	accepted := make([]string, 0, len(measurementTypes))
	for k := range measurementTypes {
		accepted = append(accepted, k)
	}
	return "", asmkit.InvalidEnumError("measurement type", s, accepted)
}

// DetectionType is the ASM detection type label for t.
func (t MeasurementType) DetectionType() string {
	switch t {
	case Absorbance:
		return "Absorbance"
	case Fluorescence:
		return "Fluorescence"
	case Luminescence:
		return "Luminescence"
	}
	return ""
}

type Metadata struct {
	FileName              string
	UNCPath               *string
	ModelNumber           string
	DeviceIdentifier      *string
	EquipmentSerialNumber *string
	ProductManufacturer   *string
	SoftwareName          *string
	SoftwareVersion       *string
}

// Measurement is the reading of one well. Value holds the absorbance,
// fluorescence or luminescence according to Type and may be NaN.
type Measurement struct {
	Type                        MeasurementType
	Identifier                  string
	SampleIdentifier            string
	WellLocation                *string
	PlateIdentifier             *string
	BatchIdentifier             *string
	Value                       values.JSONFloat
	DetectorWavelengthSetting   *float64
	ExcitationWavelengthSetting *float64
	CompartmentTemperature      *float64
	CustomInfo                  map[string]any
}

type MeasurementGroup struct {
	MeasurementTime string
	PlateWellCount  float64
	AnalystName     *string
	Measurements    []Measurement
}

type Data struct {
	Metadata          Metadata
	MeasurementGroups []MeasurementGroup
	CalculatedData    []mapper.CalculatedDataItem
}

package platereader

import (
	asmkit "github.com/reoring/asmkit"
	"github.com/reoring/asmkit/mapper"
	"github.com/reoring/asmkit/quantity"
)

type Model struct {
	Manifest                     string                       `json:"$asm.manifest"`
	PlateReaderAggregateDocument PlateReaderAggregateDocument `json:"plate reader aggregate document"`
}

type PlateReaderAggregateDocument struct {
	DeviceSystemDocument            DeviceSystemDocument                    `json:"device system document"`
	DataSystemDocument              mapper.DataSystemDocument               `json:"data system document"`
	PlateReaderDocument             []PlateReaderDocumentItem               `json:"plate reader document"`
	CalculatedDataAggregateDocument *mapper.CalculatedDataAggregateDocument `json:"calculated data aggregate document,omitempty"`
}

type DeviceSystemDocument struct {
	ModelNumber           string  `json:"model number"`
	DeviceIdentifier      *string `json:"device identifier,omitempty"`
	EquipmentSerialNumber *string `json:"equipment serial number,omitempty"`
	ProductManufacturer   *string `json:"product manufacturer,omitempty"`
}

type PlateReaderDocumentItem struct {
	Analyst                      *string                      `json:"analyst,omitempty"`
	MeasurementAggregateDocument MeasurementAggregateDocument `json:"measurement aggregate document"`
}

type MeasurementAggregateDocument struct {
	MeasurementTime     asmkit.TDateTimeValue         `json:"measurement time"`
	PlateWellCount      quantity.TQuantityValueNumber `json:"plate well count"`
	MeasurementDocument []MeasurementDocumentItem     `json:"measurement document"`
}

type MeasurementDocumentItem struct {
	MeasurementIdentifier          string                                           `json:"measurement identifier"`
	SampleDocument                 SampleDocument                                   `json:"sample document"`
	DeviceControlAggregateDocument DeviceControlAggregateDocument                   `json:"device control aggregate document"`
	Absorbance                     *quantity.TQuantityValueMilliAbsorbanceUnit      `json:"absorbance,omitempty"`
	Fluorescence                   *quantity.TQuantityValueRelativeFluorescenceUnit `json:"fluorescence,omitempty"`
	Luminescence                   *quantity.TQuantityValueRelativeLightUnit        `json:"luminescence,omitempty"`
	CustomInformationDocument      map[string]any                                   `json:"custom information document,omitempty"`
}

type SampleDocument struct {
	SampleIdentifier    string  `json:"sample identifier"`
	LocationIdentifier  *string `json:"location identifier,omitempty"`
	WellPlateIdentifier *string `json:"well plate identifier,omitempty"`
	BatchIdentifier     *string `json:"batch identifier,omitempty"`
}

type DeviceControlAggregateDocument struct {
	DeviceControlDocument []DeviceControlDocumentItem `json:"device control document"`
}

type DeviceControlDocumentItem struct {
	DeviceType                  string                                `json:"device type"`
	DetectionType               string                                `json:"detection type"`
	DetectorWavelengthSetting   *quantity.TQuantityValueNanometer     `json:"detector wavelength setting,omitempty"`
	ExcitationWavelengthSetting *quantity.TQuantityValueNanometer     `json:"excitation wavelength setting,omitempty"`
	CompartmentTemperature      *quantity.TQuantityValueDegreeCelsius `json:"compartment temperature,omitempty"`
}

package cellcounting

import (
	asmkit "github.com/reoring/asmkit"
	"github.com/reoring/asmkit/mapper"
	"github.com/reoring/asmkit/quantity"
)

type Model struct {
	Manifest                      string                        `json:"$asm.manifest"`
	CellCountingAggregateDocument CellCountingAggregateDocument `json:"cell counting aggregate document"`
}

type CellCountingAggregateDocument struct {
	DeviceSystemDocument            DeviceSystemDocument                    `json:"device system document"`
	DataSystemDocument              mapper.DataSystemDocument               `json:"data system document"`
	CellCountingDocument            []CellCountingDocumentItem              `json:"cell counting document"`
	CalculatedDataAggregateDocument *mapper.CalculatedDataAggregateDocument `json:"calculated data aggregate document,omitempty"`
}

type DeviceSystemDocument struct {
	ModelNumber           string  `json:"model number"`
	EquipmentSerialNumber *string `json:"equipment serial number,omitempty"`
	AssetManagementID     *string `json:"asset management identifier,omitempty"`
	DeviceIdentifier      *string `json:"device identifier,omitempty"`
	ProductManufacturer   *string `json:"product manufacturer,omitempty"`
	BrandName             *string `json:"brand name,omitempty"`
}

type CellCountingDocumentItem struct {
	Analyst                      *string                      `json:"analyst,omitempty"`
	MeasurementAggregateDocument MeasurementAggregateDocument `json:"measurement aggregate document"`
}

type MeasurementAggregateDocument struct {
	MeasurementDocument []MeasurementDocumentItem `json:"measurement document"`
}

type MeasurementDocumentItem struct {
	MeasurementIdentifier          string                         `json:"measurement identifier"`
	MeasurementTime                asmkit.TDateTimeValue          `json:"measurement time"`
	SampleDocument                 SampleDocument                 `json:"sample document"`
	DeviceControlAggregateDocument DeviceControlAggregateDocument `json:"device control aggregate document"`
	ProcessedDataAggregateDocument ProcessedDataAggregateDocument `json:"processed data aggregate document"`
	CustomInformationDocument      map[string]any                 `json:"custom information document,omitempty"`
}

type SampleDocument struct {
	SampleIdentifier string  `json:"sample identifier"`
	BatchIdentifier  *string `json:"batch identifier,omitempty"`
}

type DeviceControlAggregateDocument struct {
	DeviceControlDocument []DeviceControlDocumentItem `json:"device control document"`
}

type DeviceControlDocumentItem struct {
	DeviceType    string  `json:"device type"`
	DetectionType *string `json:"detection type,omitempty"`
}

type ProcessedDataAggregateDocument struct {
	ProcessedDataDocument []ProcessedDataDocumentItem `json:"processed data document"`
}

type ProcessedDataDocumentItem struct {
	ProcessedDataIdentifier *string                 `json:"processed data identifier,omitempty"`
	DataProcessingDocument  *DataProcessingDocument `json:"data processing document,omitempty"`

	Viability         quantity.TQuantityValuePercent                   `json:"viability (cell counter)"`
	ViableCellDensity quantity.TQuantityValueMillionCellsPerMilliliter `json:"viable cell density (cell counter)"`

	TotalCellCount               *quantity.TQuantityValueCell                      `json:"total cell count,omitempty"`
	ViableCellCount              *quantity.TQuantityValueCell                      `json:"viable cell count,omitempty"`
	DeadCellCount                *quantity.TQuantityValueCell                      `json:"dead cell count,omitempty"`
	TotalCellDensity             *quantity.TQuantityValueMillionCellsPerMilliliter `json:"total cell density (cell counter),omitempty"`
	DeadCellDensity              *quantity.TQuantityValueMillionCellsPerMilliliter `json:"dead cell density (cell counter),omitempty"`
	AverageTotalCellDiameter     *quantity.TQuantityValueMicrometer                `json:"average total cell diameter,omitempty"`
	AverageLiveCellDiameter      *quantity.TQuantityValueMicrometer                `json:"average live cell diameter (cell counter),omitempty"`
	AverageDeadCellDiameter      *quantity.TQuantityValueMicrometer                `json:"average dead cell diameter (cell counter),omitempty"`
	AverageTotalCellCircularity  *quantity.TQuantityValueUnitless                  `json:"average total cell circularity,omitempty"`
	AverageViableCellCircularity *quantity.TQuantityValueUnitless                  `json:"average viable cell circularity,omitempty"`
}

type DataProcessingDocument struct {
	CellTypeProcessingMethod   *string                            `json:"cell type processing method,omitempty"`
	CellDensityDilutionFactor  *quantity.TQuantityValueUnitless   `json:"cell density dilution factor,omitempty"`
	MinimumCellDiameterSetting *quantity.TQuantityValueMicrometer `json:"minimum cell diameter setting,omitempty"`
	MaximumCellDiameterSetting *quantity.TQuantityValueMicrometer `json:"maximum cell diameter setting,omitempty"`
}

package cellcounting

import (
	"github.com/reoring/asmkit/mapper"
)

// Metadata describes the instrument and the source file of a run.
type Metadata struct {
	ASMFileIdentifier     string
	DeviceType            string
	DetectionType         *string
	ModelNumber           string
	EquipmentSerialNumber *string
	AssetManagementID     *string
	SoftwareName          *string
	SoftwareVersion       *string
	ProductManufacturer   *string
	BrandName             *string
	DeviceIdentifier      *string
	UNCPath               *string
	DataSystemInstanceID  *string
}

// Measurement is one sample reading. Viability and ViableCellDensity are
// required; every pointer field is optional.
type Measurement struct {
	Identifier       string
	Timestamp        string
	SampleIdentifier string
	BatchIdentifier  *string

	Viability         float64
	ViableCellDensity float64

	TotalCellCount               *float64
	ViableCellCount              *float64
	DeadCellCount                *float64
	TotalCellDensity             *float64
	DeadCellDensity              *float64
	AverageTotalCellDiameter     *float64
	AverageLiveCellDiameter      *float64
	AverageDeadCellDiameter      *float64
	AverageTotalCellCircularity  *float64
	AverageViableCellCircularity *float64

	CellTypeProcessingMethod   *string
	CellDensityDilutionFactor  *float64
	MinimumCellDiameterSetting *float64
	MaximumCellDiameterSetting *float64

	ProcessedDataIdentifier *string
	// CustomInfo collects vendor fields with no ASM home.
	CustomInfo map[string]any
}

type MeasurementGroup struct {
	Measurements []Measurement
	AnalystName  *string
}

// Data is the root of the intermediate record tree a parser hands to Mapper.
type Data struct {
	Metadata          Metadata
	MeasurementGroups []MeasurementGroup
	CalculatedData    []mapper.CalculatedDataItem
}

// Package vicellblu reads Beckman Coulter Vi-CELL BLU CSV exports into the
// cell-counting intermediate records.
package vicellblu

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/reoring/asmkit/internal/logging"
	"github.com/reoring/asmkit/jsondata"
	"github.com/reoring/asmkit/mapper/cellcounting"
	"github.com/reoring/asmkit/reader"
	"github.com/reoring/asmkit/values"
)

const (
	DeviceType    = "brightfield imager (cell counter)"
	DetectionType = "brightfield"
	ModelNumber   = "Vi-CELL BLU"
	SoftwareName  = "Vi-CELL BLU"
	Manufacturer  = "Beckman Coulter"
)

// Column headers of the export.
const (
	colSampleID           = "Sample ID"
	colAnalysisDateTime   = "Analysis date/time"
	colAnalysisBy         = "Analysis by"
	colViability          = "Viability (%)"
	colViableDensity      = "Viable (x10^6) cells/mL"
	colTotalDensity       = "Total (x10^6) cells/mL"
	colTotalCells         = "Total cells"
	colViableCells        = "Viable cells"
	colAvgDiameter        = "Average diameter (µm)"
	colAvgViableDiameter  = "Average viable diameter (µm)"
	colAvgCircularity     = "Average circularity"
	colAvgViableCircular  = "Average viable circularity"
	colCellType           = "Cell type"
	colMinDiameter        = "Minimum Diameter (µm)"
	colMaxDiameter        = "Maximum Diameter (µm)"
	colDilution           = "Dilution"
	colAnalysisType       = "Analysis type"
	colImages             = "Images"
	colImagesForViability = "Images for viability"
	colCellTypeVersion    = "Cell type version"
)

var customFields = map[string]jsondata.FieldMapping{
	"analysis type":        {Tag: jsondata.Str, Key: colAnalysisType},
	"image count":          {Tag: jsondata.Int, Key: colImages},
	"images for viability": {Tag: jsondata.Int, Key: colImagesForViability},
	"cell type version":    {Tag: jsondata.Str, Key: colCellTypeVersion},
}

// Parser is stateless; the zero value parses without auditing.
type Parser struct {
	// AuditUnusedFields logs columns the parser never consumed.
	AuditUnusedFields bool
	Logger            *slog.Logger
}

// Parse reads one export. fileName is recorded in the data system document.
func (p Parser) Parse(r io.Reader, fileName string) (*cellcounting.Data, error) {
	lr, err := reader.FromReader(r)
	if err != nil {
		return nil, fmt.Errorf("vicellblu: read %s: %w", fileName, err)
	}
	log := logging.Or(p.Logger, "vicellblu")
	cr := reader.NewCSVReader(lr, jsondata.Options{AuditUnusedFields: p.AuditUnusedFields, Logger: log})
	rows, err := cr.PopCSVBlockAsDicts(',')
	if err != nil {
		return nil, fmt.Errorf("vicellblu: %s: %w", fileName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("vicellblu: %s: no sample rows", fileName)
	}

	data := &cellcounting.Data{
		Metadata: cellcounting.Metadata{
			ASMFileIdentifier:   fileName,
			DeviceType:          DeviceType,
			DetectionType:       values.Ptr(DetectionType),
			ModelNumber:         ModelNumber,
			SoftwareName:        values.Ptr(SoftwareName),
			ProductManufacturer: values.Ptr(Manufacturer),
		},
	}
	for i, row := range rows {
		group, err := mapRow(row)
		unread := row.Close()
		if err != nil {
			return nil, fmt.Errorf("vicellblu: %s row %d: %w", fileName, i+1, err)
		}
		if len(unread) > 0 {
			log.Debug("row has unmapped columns", "row", i+1, "columns", unread)
		}
		data.MeasurementGroups = append(data.MeasurementGroups, group)
	}
	log.Debug("parsed export", "file", fileName, "samples", len(data.MeasurementGroups))
	return data, nil
}

func mapRow(row *jsondata.DictData) (cellcounting.MeasurementGroup, error) {
	viability, err := row.MustFloat(colViability)
	if err != nil {
		return cellcounting.MeasurementGroup{}, err
	}
	viableDensity, err := row.MustFloat(colViableDensity)
	if err != nil {
		return cellcounting.MeasurementGroup{}, err
	}
	sampleID, err := row.MustStr(colSampleID)
	if err != nil {
		return cellcounting.MeasurementGroup{}, err
	}
	ts, err := row.MustStr(colAnalysisDateTime)
	if err != nil {
		return cellcounting.MeasurementGroup{}, err
	}

	totalDensity := row.Float(colTotalDensity)
	totalCells := row.Float(colTotalCells)
	viableCells := row.Float(colViableCells)

	m := cellcounting.Measurement{
		Identifier:                   values.RandomUUIDStr(),
		Timestamp:                    ts,
		SampleIdentifier:             sampleID,
		Viability:                    viability,
		ViableCellDensity:            viableDensity,
		TotalCellDensity:             totalDensity,
		TotalCellCount:               totalCells,
		ViableCellCount:              viableCells,
		DeadCellCount:                difference(totalCells, viableCells),
		DeadCellDensity:              difference(totalDensity, &viableDensity),
		AverageTotalCellDiameter:     micronColumn(row, colAvgDiameter),
		AverageLiveCellDiameter:      micronColumn(row, colAvgViableDiameter),
		AverageTotalCellCircularity:  row.Float(colAvgCircularity),
		AverageViableCellCircularity: row.Float(colAvgViableCircular),
		CellTypeProcessingMethod:     row.Str(colCellType),
		MinimumCellDiameterSetting:   micronColumn(row, colMinDiameter),
		MaximumCellDiameterSetting:   micronColumn(row, colMaxDiameter),
		CellDensityDilutionFactor:    row.Float(colDilution),
	}
	if custom := row.GetKeysAsDict(customFields); len(custom) > 0 {
		m.CustomInfo = custom
	}
	return cellcounting.MeasurementGroup{
		AnalystName:  row.Str(colAnalysisBy),
		Measurements: []cellcounting.Measurement{m},
	}, nil
}

func difference(total, part *float64) *float64 {
	if total == nil || part == nil {
		return nil
	}
	return values.Ptr(*total - *part)
}

// micronColumn reads a diameter column whose header may spell micro with
// either the micro sign or the Greek mu.
func micronColumn(row *jsondata.DictData, col string) *float64 {
	v, _ := row.GetFirst(jsondata.Float, col, strings.ReplaceAll(col, "µ", "μ"))
	if f, ok := v.(float64); ok {
		return &f
	}
	return nil
}

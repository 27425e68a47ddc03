package mapper

import (
	asmkit "github.com/reoring/asmkit"
	"github.com/reoring/asmkit/quantity"
	"github.com/reoring/asmkit/values"
)

// DataSource points a calculated value at the measurement it was derived from.
type DataSource struct {
	Identifier string
	Feature    string
}

// CalculatedDataItem is one derived value in the intermediate record graph.
type CalculatedDataItem struct {
	Identifier  string
	Name        string
	Value       values.JSONFloat
	Unit        string
	DataSources []DataSource
	Description *string
}

type DataSourceDocumentItem struct {
	DataSourceIdentifier string `json:"data source identifier"`
	DataSourceFeature    string `json:"data source feature"`
}

type DataSourceAggregateDocument struct {
	DataSourceDocument []DataSourceDocumentItem `json:"data source document"`
}

type CalculatedDataDocumentItem struct {
	CalculatedDataIdentifier    string                       `json:"calculated data identifier"`
	CalculatedDataName          string                       `json:"calculated data name"`
	CalculatedResult            quantity.Generic             `json:"calculated result"`
	CalculationDescription      *string                      `json:"calculation description,omitempty"`
	DataSourceAggregateDocument *DataSourceAggregateDocument `json:"data source aggregate document,omitempty"`
}

type CalculatedDataAggregateDocument struct {
	CalculatedDataDocument []CalculatedDataDocumentItem `json:"calculated data document"`
}

// MapCalculatedData builds the aggregate document for items, or nil when there
// are none. Items must carry an identifier and a name.
func MapCalculatedData(items []CalculatedDataItem) (*CalculatedDataAggregateDocument, error) {
	if len(items) == 0 {
		return nil, nil
	}
	doc := &CalculatedDataAggregateDocument{CalculatedDataDocument: make([]CalculatedDataDocumentItem, 0, len(items))}
	for i, it := range items {
		if it.Identifier == "" {
			return nil, asmkit.RequiredError("calculated data identifier", "").WithPath(asmkit.Pointer{}.Index(i).Field("identifier"))
		}
		if it.Name == "" {
			return nil, asmkit.RequiredError("calculated data name", "").WithPath(asmkit.Pointer{}.Index(i).Field("name"))
		}
		item := CalculatedDataDocumentItem{
			CalculatedDataIdentifier: it.Identifier,
			CalculatedDataName:       it.Name,
			CalculatedResult:         quantity.Generic{Value: it.Value, UnitLabel: unitOrUnitless(it.Unit)},
			CalculationDescription:   it.Description,
		}
		if len(it.DataSources) > 0 {
			src := &DataSourceAggregateDocument{DataSourceDocument: make([]DataSourceDocumentItem, 0, len(it.DataSources))}
			for _, ds := range it.DataSources {
				src.DataSourceDocument = append(src.DataSourceDocument, DataSourceDocumentItem{
					DataSourceIdentifier: ds.Identifier,
					DataSourceFeature:    ds.Feature,
				})
			}
			item.DataSourceAggregateDocument = src
		}
		doc.CalculatedDataDocument = append(doc.CalculatedDataDocument, item)
	}
	return doc, nil
}

func unitOrUnitless(u string) string {
	if u == "" {
		return quantity.Unitless{}.Symbol()
	}
	return u
}

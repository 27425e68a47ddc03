// Package mapper holds the contract every technique mapper implements and the
// pieces of the ASM model shared between techniques.
package mapper

import (
	asmkit "github.com/reoring/asmkit"
)

// SchemaMapper turns a parser's intermediate record tree D into the ASM model M.
// Implementations keep no state between calls.
type SchemaMapper[D, M any] interface {
	MapModel(data D) (M, error)
}

// Base carries the naming and date-time configuration shared by mappers.
// The zero value is usable.
type Base struct {
	ConverterName    string
	ConverterVersion string
	// DateTime normalizes vendor timestamps. Defaults to asmkit.DefaultDateTime.
	DateTime asmkit.DateTimeFunc
}

func (b Base) Name() string {
	if b.ConverterName == "" {
		return asmkit.ConverterName
	}
	return b.ConverterName
}

func (b Base) Version() string {
	if b.ConverterVersion == "" {
		return asmkit.ConverterVersion
	}
	return b.ConverterVersion
}

// GetDateTime normalizes raw through the configured hook.
func (b Base) GetDateTime(raw string) (asmkit.TDateTimeValue, error) {
	if b.DateTime != nil {
		return b.DateTime(raw)
	}
	return asmkit.DefaultDateTime(raw)
}

// GetDateTimeOrNone is GetDateTime for optional timestamps: nil stays nil.
func (b Base) GetDateTimeOrNone(raw *string) (*asmkit.TDateTimeValue, error) {
	if raw == nil {
		return nil, nil
	}
	v, err := b.GetDateTime(*raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// DataSystemDocument identifies the file and the converter that produced a
// document. Its shape is the same for every technique.
type DataSystemDocument struct {
	FileName            *string `json:"file name,omitempty"`
	UNCPath             *string `json:"UNC path,omitempty"`
	SoftwareName        *string `json:"software name,omitempty"`
	SoftwareVersion     *string `json:"software version,omitempty"`
	ASMConverterName    string  `json:"ASM converter name"`
	ASMConverterVersion string  `json:"ASM converter version"`
}

// DataSystem fills the converter fields of a DataSystemDocument from b.
func (b Base) DataSystem(fileName, uncPath, softwareName, softwareVersion *string) DataSystemDocument {
	return DataSystemDocument{
		FileName:            fileName,
		UNCPath:             uncPath,
		SoftwareName:        softwareName,
		SoftwareVersion:     softwareVersion,
		ASMConverterName:    b.Name(),
		ASMConverterVersion: b.Version(),
	}
}

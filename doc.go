// Package asmkit is the shared mapping layer behind instrument parsers that
// emit Allotrope Simple Model (ASM) documents.
//
// The root package provides:
//
// - A stable error model via Issue/Issues (path, code, message) split into
// conversion errors (bad vendor data) and value errors (bad configuration)
// - Date-time normalization hooks for mappers
// - Document serialization and streaming decode with duplicate-key/depth enforcement
//
// Layout:
// - values, quantity: coercion of raw strings/numbers into typed ASM quantities
// - jsondata: read-tracked access to loosely typed records
// - mapper: the SchemaMapper contract and per-technique mappers under mapper/...
// - json2csv: flattening ASM documents into tables
// - reader, parsers/...: tokenizers and a reference vendor parser
// - detailed implementations live under internal/; the CLI is cmd/asmkit
//
// Typical usage:
//
//	data, err := vicellblu.Parser{}.Parse(f, "export.csv")
//	model, err := cellcounting.Mapper{}.MapModel(data)
//	doc, err := asmkit.ToDocument(model)
//	tables, err := json2csv.Convert(doc, cfg)
package asmkit

package asmkit

import "log/slog"

// Severity expresses the severity level for decode-time findings.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// DecodeOpt bundles document decoding options.
type DecodeOpt struct {
	// OnDuplicateKey decides what happens when an object repeats a key:
	// Ignore keeps the last value, Warn logs and keeps the last value, Error
	// fails the decode.
	OnDuplicateKey Severity
	// MaxDepth limits object/array nesting; 0 disables the check.
	MaxDepth int
	Logger   *slog.Logger
}

// ConverterVersion is stamped into every data system document as the ASM
// converter version.
const ConverterVersion = "0.1.0"

// ConverterName is the default ASM converter name.
const ConverterName = "asmkit"

// TDateTimeValue is an ISO 8601 date-time string as ASM expects it.
type TDateTimeValue = string

package asmkit

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/reoring/asmkit/i18n"
)

// Issue codes. Conversion codes describe problems with instrument data,
// value codes describe problems with configuration or structure.
const (
	// conversion class
	CodeRequired     = "required"
	CodeInvalidType  = "invalid_type"
	CodeInvalidEnum  = "invalid_enum"
	CodeUnknownKey   = "unknown_key"
	CodeDuplicateKey = "duplicate_key"
	CodeParseError   = "parse_error"
	// value class
	CodeInvalidConfig    = "invalid_config"
	CodeMissingReference = "missing_reference"
	CodeAmbiguousPivot   = "ambiguous_pivot"
	CodeNotSingleValued  = "not_single_valued"
	CodeTooBig           = "too_big"
	CodeNotComparable    = "not_comparable"
)

var (
	// ErrConversion is the class of errors raised while converting vendor data
	// (missing required fields, unconvertible values, unknown enum values).
	ErrConversion = errors.New("asmkit: conversion error")
	// ErrValue is the class of errors raised for structural or configuration
	// problems (bad json2csv configs, ambiguous pivots, non-single metadata).
	ErrValue = errors.New("asmkit: value error")
)

var valueCodes = map[string]struct{}{
	CodeInvalidConfig:    {},
	CodeMissingReference: {},
	CodeAmbiguousPivot:   {},
	CodeNotSingleValued:  {},
	CodeTooBig:           {},
	CodeNotComparable:    {},
}

// Issue represents a single conversion or configuration problem.
type Issue struct {
	Path    string // JSON Pointer or key of the offending field; may be empty.
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	// Params carries structured parameters (e.g. {"value": "x", "accepted": [...]}).
	Params map[string]any
}

// Error renders "message (code at path)".
func (it Issue) Error() string {
	msg := it.Message
	if msg == "" {
		msg = i18n.T(it.Code, nil)
	}
	if it.Path != "" {
		return fmt.Sprintf("%s (%s at %s)", msg, it.Code, it.Path)
	}
	return msg
}

// Unwrap exposes the class sentinel and the cause to errors.Is / errors.As.
func (it Issue) Unwrap() []error {
	out := []error{it.class()}
	if it.Cause != nil {
		out = append(out, it.Cause)
	}
	return out
}

func (it Issue) class() error {
	if _, ok := valueCodes[it.Code]; ok {
		return ErrValue
	}
	return ErrConversion
}

// WithPath returns a copy of it located at p.
func (it Issue) WithPath(p Pointer) Issue {
	it.Path = p.String()
	return it
}

// Issues is a collection of problems that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(iss[i].Error())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes every issue so errors.Is matches on any of them.
func (iss Issues) Unwrap() []error {
	out := make([]error, len(iss))
	for i := range iss {
		out[i] = iss[i]
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error. A single Issue is returned as a
// one-element slice.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	var it Issue
	if errors.As(err, &it) {
		return Issues{it}, true
	}
	return nil, false
}

// IssueCode returns the code of the first Issue in err, or "".
func IssueCode(err error) string {
	if iss, ok := AsIssues(err); ok && len(iss) > 0 {
		return iss[0].Code
	}
	return ""
}

// ConversionError builds a conversion Issue with a free-form message.
func ConversionError(format string, args ...any) Issue {
	return Issue{Code: CodeParseError, Message: fmt.Sprintf(format, args...)}
}

// RequiredError reports a missing must-have field. An empty msg falls back to
// the catalog message.
func RequiredError(key, msg string) Issue {
	if msg == "" {
		msg = i18n.T(CodeRequired, map[string]string{"key": key})
	}
	return Issue{Path: key, Code: CodeRequired, Message: msg}
}

// InvalidTypeError reports a value that could not be converted to the expected
// type.
func InvalidTypeError(key string, value any, expected string) Issue {
	return Issue{
		Path:    key,
		Code:    CodeInvalidType,
		Message: i18n.T(CodeInvalidType, map[string]string{"key": key, "value": fmt.Sprint(value), "expected": expected}),
		Params:  map[string]any{"value": value, "expected": expected},
	}
}

// InvalidEnumError reports an unrecognized vendor value together with the list
// of accepted values.
func InvalidEnumError(kind string, value any, accepted []string) Issue {
	acc := append([]string(nil), accepted...)
	sort.Strings(acc)
	return Issue{
		Code: CodeInvalidEnum,
		Message: i18n.T(CodeInvalidEnum, map[string]string{
			"kind":     kind,
			"value":    fmt.Sprint(value),
			"accepted": strings.Join(acc, ", "),
		}),
		Params: map[string]any{"kind": kind, "value": value, "accepted": acc},
	}
}

// ValueError builds a value-class Issue with the given code.
func ValueError(code string, format string, args ...any) Issue {
	return Issue{Code: code, Message: fmt.Sprintf(format, args...)}
}

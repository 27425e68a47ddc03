package asmkit

import (
	"bytes"
	"errors"
	"io"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/asmkit/internal/engine"
	"github.com/reoring/asmkit/internal/logging"
	"github.com/reoring/asmkit/source/gojson"
)

// Marshal serializes an ASM model to JSON. Optional fields that are nil are
// omitted through their struct tags.
func Marshal(model any) ([]byte, error) {
	b, err := j.Marshal(model)
	if err != nil {
		return nil, Issue{Code: CodeParseError, Message: "marshal model: " + err.Error(), Cause: err}
	}
	return b, nil
}

// MarshalIndent is Marshal with two-space indentation.
func MarshalIndent(model any) ([]byte, error) {
	b, err := j.MarshalIndent(model, "", "  ")
	if err != nil {
		return nil, Issue{Code: CodeParseError, Message: "marshal model: " + err.Error(), Cause: err}
	}
	return b, nil
}

// ToDocument serializes model and decodes it back into the generic
// map[string]any form consumed by json2csv.
func ToDocument(model any) (map[string]any, error) {
	b, err := Marshal(model)
	if err != nil {
		return nil, err
	}
	return DecodeDocumentBytes(b)
}

// DecodeDocumentBytes decodes a JSON object held in memory.
func DecodeDocumentBytes(b []byte, opts ...DecodeOpt) (map[string]any, error) {
	return DecodeDocument(bytes.NewReader(b), opts...)
}

// DecodeDocument streams a JSON object from r through duplicate-key and depth
// enforcement. Numbers are decoded as float64.
func DecodeDocument(r io.Reader, opts ...DecodeOpt) (map[string]any, error) {
	var opt DecodeOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	log := logging.Or(opt.Logger, "asmkit")
	src := eng.WrapWithEnforcement(gojson.NewReader(r), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		IssueSink: func(si eng.SimpleIssue) {
			log.Warn("document: "+si.Message, "path", si.Path, "code", si.Code)
		},
	})
	v, err := eng.DecodeAny(src)
	if err != nil {
		return nil, toIssue(err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, Issue{Path: "/", Code: CodeInvalidType, Message: "expected a JSON object at the document root"}
	}
	return m, nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func toIssue(err error) Issue {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return Issue{Code: ie.Code, Path: ie.Path, Message: ie.Message}
	}
	if errors.Is(err, io.EOF) {
		return Issue{Code: CodeParseError, Message: "unexpected end of document", Cause: err}
	}
	return Issue{Code: CodeParseError, Message: err.Error(), Cause: err}
}

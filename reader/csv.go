package reader

import (
	"encoding/csv"
	"fmt"
	"strings"

	asmkit "github.com/reoring/asmkit"
	"github.com/reoring/asmkit/jsondata"
)

// CSVReader reads delimited blocks out of a LinesReader.
type CSVReader struct {
	*LinesReader
	// Options is applied to every DictData handed out.
	Options jsondata.Options
}

func NewCSVReader(lr *LinesReader, opts ...jsondata.Options) *CSVReader {
	r := &CSVReader{LinesReader: lr}
	if len(opts) > 0 {
		r.Options = opts[0]
	}
	return r
}

// PopCSVBlockAsRows parses the next block with delim. Ragged rows are allowed.
func (r *CSVReader) PopCSVBlockAsRows(delim rune) ([][]string, error) {
	start := r.LineNumber()
	block := r.PopCSVBlock()
	if len(block) == 0 {
		return nil, nil
	}
	cr := csv.NewReader(strings.NewReader(strings.Join(block, "\n")))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, asmkit.Issue{
			Code:    asmkit.CodeParseError,
			Message: fmt.Sprintf("unable to parse delimited block starting at line %d", start),
			Cause:   err,
		}
	}
	return rows, nil
}

// PopCSVBlockAsDicts parses the next block and zips every data row with the
// header row. Each record is named "row N" for audit output.
func (r *CSVReader) PopCSVBlockAsDicts(delim rune) ([]*jsondata.DictData, error) {
	rows, err := r.PopCSVBlockAsRows(delim)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	header := rows[0]
	out := make([]*jsondata.DictData, 0, len(rows)-1)
	for i, row := range rows[1:] {
		opts := r.Options
		opts.Name = fmt.Sprintf("row %d", i+1)
		out = append(out, jsondata.NewDictFromRow(header, row, opts))
	}
	return out, nil
}

// Package reader tokenizes instrument exports into lines and CSV blocks.
package reader

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeText converts raw file bytes to a string. A UTF-8 or UTF-16 byte order
// mark selects the encoding and is dropped; without one the input is UTF-8.
func DecodeText(b []byte) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(b), dec))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// LinesReader is a forward cursor over the lines of a text export.
type LinesReader struct {
	lines []string
	pos   int
}

// NewLinesReader wraps already split lines.
func NewLinesReader(lines []string) *LinesReader {
	return &LinesReader{lines: lines}
}

// FromBytes decodes b and splits it on \n, \r\n or \r.
func FromBytes(b []byte) (*LinesReader, error) {
	text, err := DecodeText(b)
	if err != nil {
		return nil, err
	}
	return NewLinesReader(SplitLines(text)), nil
}

// FromReader reads r to the end and calls FromBytes.
func FromReader(r io.Reader) (*LinesReader, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return FromBytes(b)
}

// SplitLines splits text into lines without terminators. A final terminator
// does not produce an empty last line.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// LineNumber is the 1-based number of the current line.
func (r *LinesReader) LineNumber() int { return r.pos + 1 }

// IsEmpty reports whether every line has been consumed.
func (r *LinesReader) IsEmpty() bool { return r.pos >= len(r.lines) }

func (r *LinesReader) Current() (string, bool) {
	if r.IsEmpty() {
		return "", false
	}
	return r.lines[r.pos], true
}

func (r *LinesReader) Pop() (string, bool) {
	line, ok := r.Current()
	if ok {
		r.pos++
	}
	return line, ok
}

// PopIf consumes the current line only when it matches pat.
func (r *LinesReader) PopIf(pat *regexp.Regexp) (string, bool) {
	line, ok := r.Current()
	if !ok || !pat.MatchString(line) {
		return "", false
	}
	r.pos++
	return line, true
}

// DropEmpty skips blank lines.
func (r *LinesReader) DropEmpty() {
	for {
		line, ok := r.Current()
		if !ok || strings.TrimSpace(line) != "" {
			return
		}
		r.pos++
	}
}

// DropUntil skips lines up to, not including, the first match of pat. It
// returns the matching line, or false when the input ran out.
func (r *LinesReader) DropUntil(pat *regexp.Regexp) (string, bool) {
	for {
		line, ok := r.Current()
		if !ok {
			return "", false
		}
		if pat.MatchString(line) {
			return line, true
		}
		r.pos++
	}
}

// DropUntilInclusive is DropUntil that also consumes the matching line.
func (r *LinesReader) DropUntilInclusive(pat *regexp.Regexp) (string, bool) {
	line, ok := r.DropUntil(pat)
	if ok {
		r.pos++
	}
	return line, ok
}

// PopUntil returns the lines before the first match of pat, leaving the match
// current.
func (r *LinesReader) PopUntil(pat *regexp.Regexp) []string {
	var out []string
	for {
		line, ok := r.Current()
		if !ok || pat.MatchString(line) {
			return out
		}
		out = append(out, line)
		r.pos++
	}
}

// PopUntilEmpty returns the lines before the next blank line.
func (r *LinesReader) PopUntilEmpty() []string {
	var out []string
	for {
		line, ok := r.Current()
		if !ok || strings.TrimSpace(line) == "" {
			return out
		}
		out = append(out, line)
		r.pos++
	}
}

// PopCSVBlock skips leading blank lines and returns the following run of
// non-blank lines.
func (r *LinesReader) PopCSVBlock() []string {
	r.DropEmpty()
	return r.PopUntilEmpty()
}

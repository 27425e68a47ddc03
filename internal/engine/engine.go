package engine

import "strconv"

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

// DecodeAny builds an "any" tree from the token source. Objects become
// map[string]any, arrays []any and numbers float64. Structural errors carry
// the pointer of the value being decoded.
func DecodeAny(src TokenSource) (any, error) {
	d := &decoder{src: src}
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	return d.value(tok)
}

type decoder struct {
	src  TokenSource
	path string
}

func (d *decoder) fail(msg string) error {
	return IssueError{SimpleIssue{Code: "parse_error", Path: pointerOrRoot(d.path), Message: msg}}
}

func (d *decoder) value(tok Token) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return d.object()
	case KindBeginArray:
		return d.array()
	case KindString:
		return tok.String, nil
	case KindNumber:
		f, err := strconv.ParseFloat(tok.Number, 64)
		if err != nil {
			return nil, d.fail("invalid number " + tok.Number)
		}
		return f, nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, d.fail("unexpected token at offset " + strconv.FormatInt(tok.Offset, 10))
	}
}

func (d *decoder) object() (any, error) {
	m := make(map[string]any)
	for {
		tok, err := d.src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, d.fail("expected object key")
		}
		vt, err := d.src.NextToken()
		if err != nil {
			return nil, err
		}
		parent := d.path
		d.path = joinPointer(parent, tok.String)
		v, err := d.value(vt)
		d.path = parent
		if err != nil {
			return nil, err
		}
		// last occurrence wins for duplicated keys that were let through
		m[tok.String] = v
	}
}

func (d *decoder) array() (any, error) {
	arr := []any{}
	for i := 0; ; i++ {
		tok, err := d.src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		parent := d.path
		d.path = joinPointer(parent, strconv.Itoa(i))
		v, err := d.value(tok)
		d.path = parent
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

package json2csv

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Placeholder marks where a pivot label is substituted into a column name.
const Placeholder = "$label$"

type segment struct {
	lit   string
	label bool
}

// Template is a column name made of literal and label segments. It is parsed
// once and resolved per pivot label.
type Template struct {
	raw  string
	segs []segment
}

// ParseTemplate splits s on Placeholder.
func ParseTemplate(s string) Template {
	t := Template{raw: s}
	parts := strings.Split(s, Placeholder)
	for i, p := range parts {
		if i > 0 {
			t.segs = append(t.segs, segment{label: true})
		}
		if p != "" {
			t.segs = append(t.segs, segment{lit: p})
		}
	}
	return t
}

func (t Template) String() string { return t.raw }

func (t Template) IsZero() bool { return t.raw == "" }

// HasLabel reports whether the template contains a placeholder.
func (t Template) HasLabel() bool {
	for _, s := range t.segs {
		if s.label {
			return true
		}
	}
	return false
}

// Resolve substitutes label for every placeholder.
func (t Template) Resolve(label string) string {
	var b strings.Builder
	for _, s := range t.segs {
		if s.label {
			b.WriteString(label)
		} else {
			b.WriteString(s.lit)
		}
	}
	return b.String()
}

func (t *Template) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	*t = ParseTemplate(s)
	return nil
}

func (t Template) MarshalYAML() (any, error) { return t.raw, nil }

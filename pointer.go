package asmkit

import (
	"strconv"
	"strings"
)

// Pointer builds JSON Pointer paths in a chain-safe way. The zero value is the
// document root.
type Pointer struct {
	parts []string
}

// ParsePointer splits an RFC 6901 pointer string.
func ParsePointer(path string) Pointer {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}
	return Pointer{parts: parts}
}

// Field appends an object key.
func (p Pointer) Field(name string) Pointer {
	if name == "" {
		return p
	}
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return Pointer{parts: append(append([]string{}, p.parts...), esc)}
}

// Index appends an array index.
func (p Pointer) Index(i int) Pointer {
	return Pointer{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

// String renders the pointer; the root is "/".
func (p Pointer) String() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

// IsRoot reports whether p has no segments.
func (p Pointer) IsRoot() bool { return len(p.parts) == 0 }

// Package values holds the scalar coercion helpers shared by every parser and
// mapper: parse-or-raise, parse-or-none and parse-or-NaN variants for floats,
// ints and bools, plus the JSONFloat type that keeps "measured but invalid"
// distinct from "not measured".
package values

import (
	"math"
	"strconv"

	j "github.com/goccy/go-json"
)

// InvalidJSONFloat names the non-finite float values that JSON cannot carry as
// numbers. ASM documents carry them as strings.
type InvalidJSONFloat string

const (
	NaN              InvalidJSONFloat = "NaN"
	PositiveInfinity InvalidJSONFloat = "+Infinity"
	NegativeInfinity InvalidJSONFloat = "-Infinity"
)

// Float returns the float64 the marker stands for.
func (m InvalidJSONFloat) Float() float64 {
	switch m {
	case PositiveInfinity:
		return math.Inf(1)
	case NegativeInfinity:
		return math.Inf(-1)
	default:
		return math.NaN()
	}
}

// JSONFloat is a float64 that serializes NaN and ±Inf as the InvalidJSONFloat
// strings instead of failing.
type JSONFloat float64

// NaNValue is the JSONFloat for a measured but invalid reading.
func NaNValue() JSONFloat { return JSONFloat(math.NaN()) }

// IsValid reports whether f is finite.
func (f JSONFloat) IsValid() bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Invalid returns the marker for a non-finite value and false for finite ones.
func (f JSONFloat) Invalid() (InvalidJSONFloat, bool) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return NaN, true
	case math.IsInf(v, 1):
		return PositiveInfinity, true
	case math.IsInf(v, -1):
		return NegativeInfinity, true
	}
	return "", false
}

func (f JSONFloat) MarshalJSON() ([]byte, error) {
	if m, ok := f.Invalid(); ok {
		return j.Marshal(string(m))
	}
	return strconv.AppendFloat(nil, float64(f), 'g', -1, 64), nil
}

func (f *JSONFloat) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := j.Unmarshal(b, &s); err != nil {
			return err
		}
		switch InvalidJSONFloat(s) {
		case NaN, PositiveInfinity, NegativeInfinity:
			*f = JSONFloat(InvalidJSONFloat(s).Float())
			return nil
		}
		return invalidFloat(s, "")
	}
	var v float64
	if err := j.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = JSONFloat(v)
	return nil
}

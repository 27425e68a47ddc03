package values

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	asmkit "github.com/reoring/asmkit"
)

// nanLiterals are the spellings instruments use for "measured but invalid".
var nanLiterals = map[string]struct{}{
	"nan": {}, "n/a": {}, "na": {}, "#n/a": {}, "-": {}, "--": {}, "---": {},
	"inf": {}, "-inf": {}, "+inf": {}, "infinity": {}, "-infinity": {}, "+infinity": {},
	"overflow": {}, "over": {}, "invalid": {}, "error": {},
}

var groupedNumber = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d*)?$`)

// IsNaNLiteral reports whether s is one of the vendor spellings of an invalid
// reading.
func IsNaNLiteral(s string) bool {
	_, ok := nanLiterals[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// ParseFloat parses a finite float, tolerating surrounding whitespace, a
// trailing percent sign and thousands separators. NaN and infinity spellings
// are rejected.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" || IsNaNLiteral(s) {
		return 0, false
	}
	if groupedNumber.MatchString(s) {
		s = strings.ReplaceAll(s, ",", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseInt parses an integer; integral floats ("3.0") are accepted.
func ParseInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	f, ok := ParseFloat(s)
	// float64 bounds of int64 are [-2^63, 2^63).
	if !ok || f != math.Trunc(f) || f >= 1<<63 || f < -1<<63 {
		return 0, false
	}
	return int64(f), true
}

// ParseBool accepts true/false, yes/no, y/n, t/f, on/off and 1/0,
// case-insensitively.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "on", "1":
		return true, true
	case "false", "f", "no", "n", "off", "0":
		return false, true
	}
	return false, false
}

// TryFloat parses value or returns a conversion error naming valueName.
func TryFloat(value, valueName string) (float64, error) {
	f, ok := ParseFloat(value)
	if !ok {
		return 0, invalidFloat(value, valueName)
	}
	return f, nil
}

// TryFloatOrNone returns nil for unparseable input.
func TryFloatOrNone(value string) *float64 {
	f, ok := ParseFloat(value)
	if !ok {
		return nil
	}
	return &f
}

// TryFloatOrDefault returns def for unparseable input.
func TryFloatOrDefault(value string, def float64) float64 {
	if f, ok := ParseFloat(value); ok {
		return f
	}
	return def
}

// TryFloatOrNaN returns NaN for anything that is not a finite float, including
// the instrument NaN spellings.
func TryFloatOrNaN(value string) JSONFloat {
	if f, ok := ParseFloat(value); ok {
		return JSONFloat(f)
	}
	return NaNValue()
}

// TryFloatOrNaNOrNone is TryFloatOrNaN, but blank input is absent (nil) rather
// than invalid.
func TryFloatOrNaNOrNone(value string) *JSONFloat {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	f := TryFloatOrNaN(value)
	return &f
}

// NumOrNaN turns an optional number into a JSONFloat, using NaN for nil.
func NumOrNaN(v *float64) JSONFloat {
	if v == nil {
		return NaNValue()
	}
	return JSONFloat(*v)
}

// TryInt parses value or returns a conversion error naming valueName.
func TryInt(value, valueName string) (int64, error) {
	i, ok := ParseInt(value)
	if !ok {
		return 0, asmkit.Issue{
			Path:    valueName,
			Code:    asmkit.CodeInvalidType,
			Message: fmt.Sprintf("Invalid integer string: '%s'.", value),
			Params:  map[string]any{"value": value},
		}
	}
	return i, nil
}

// TryIntOrNone returns nil for unparseable input.
func TryIntOrNone(value string) *int64 {
	i, ok := ParseInt(value)
	if !ok {
		return nil
	}
	return &i
}

// TryBool parses value or returns a conversion error naming valueName.
func TryBool(value, valueName string) (bool, error) {
	b, ok := ParseBool(value)
	if !ok {
		return false, asmkit.InvalidTypeError(valueName, value, "bool")
	}
	return b, nil
}

// TryBoolOrNone returns nil for unrecognized input.
func TryBoolOrNone(value string) *bool {
	b, ok := ParseBool(value)
	if !ok {
		return nil
	}
	return &b
}

// AssertNotNone dereferences v or fails with a required-field error. msg
// overrides the default message.
func AssertNotNone[T any](v *T, name string, msg ...string) (T, error) {
	if v == nil {
		var zero T
		m := ""
		if len(msg) > 0 {
			m = msg[0]
		}
		return zero, asmkit.RequiredError(name, m)
	}
	return *v, nil
}

// Ptr returns a pointer to v. Handy for optional struct fields.
func Ptr[T any](v T) *T { return &v }

// RandomUUIDStr returns a fresh identifier for documents whose vendor export
// carries none.
func RandomUUIDStr() string { return uuid.New().String() }

func invalidFloat(value, valueName string) error {
	return asmkit.Issue{
		Path:    valueName,
		Code:    asmkit.CodeInvalidType,
		Message: fmt.Sprintf("Invalid float string: '%s'.", value),
		Params:  map[string]any{"value": value},
	}
}

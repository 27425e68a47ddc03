package asmkit

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateTimeFunc normalizes a vendor timestamp into an ASM date-time value.
type DateTimeFunc func(raw string) (TDateTimeValue, error)

// dateTimeLayout is ISO 8601 with a numeric offset ("+00:00" rather than "Z")
// and optional microseconds.
const dateTimeLayout = "2006-01-02T15:04:05.999999-07:00"

// DefaultDateTime parses raw in any of the common vendor layouts and assumes
// UTC when the timestamp carries no zone.
func DefaultDateTime(raw string) (TDateTimeValue, error) {
	return DateTimeIn(time.UTC)(raw)
}

// DateTimeIn returns a DateTimeFunc that interprets zone-less timestamps in
// loc.
func DateTimeIn(loc *time.Location) DateTimeFunc {
	return func(raw string) (TDateTimeValue, error) {
		s := strings.TrimSpace(raw)
		if s == "" {
			return "", RequiredError("timestamp", "")
		}
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return FormatDateTime(t), nil
		}
		t, err := dateparse.ParseIn(s, loc)
		if err != nil {
			return "", Issue{Code: CodeInvalidType, Message: "invalid timestamp '" + raw + "'", Cause: err, Params: map[string]any{"value": raw}}
		}
		return FormatDateTime(t), nil
	}
}

// FormatDateTime renders t in the canonical ASM form.
func FormatDateTime(t time.Time) TDateTimeValue {
	return t.Format(dateTimeLayout)
}

// Package quantity provides the ASM (value, unit) pairs. Each unit is a marker
// type, so Quantity[Percent] and Quantity[Micrometer] are distinct Go types
// just as every ASM quantity class is distinct.
package quantity

import (
	"sort"
	"strings"

	j "github.com/goccy/go-json"

	asmkit "github.com/reoring/asmkit"
	"github.com/reoring/asmkit/values"
)

// Unit is implemented by the unit marker types.
type Unit interface {
	Symbol() string
}

// Value is the unit-erased view of any quantity.
type Value interface {
	Float() values.JSONFloat
	Unit() string
}

// Quantity is a value measured in U.
type Quantity[U Unit] struct {
	Value values.JSONFloat
}

// New wraps v.
func New[U Unit](v float64) Quantity[U] { return Quantity[U]{Value: values.JSONFloat(v)} }

// OrNone wraps v, or returns nil when v is nil. Zero is a present value.
func OrNone[U Unit](v *float64) *Quantity[U] {
	if v == nil {
		return nil
	}
	return &Quantity[U]{Value: values.JSONFloat(*v)}
}

// OrNoneJSON is OrNone for values that may carry a NaN marker.
func OrNoneJSON[U Unit](v *values.JSONFloat) *Quantity[U] {
	if v == nil {
		return nil
	}
	return &Quantity[U]{Value: *v}
}

func (q Quantity[U]) Float() values.JSONFloat { return q.Value }

func (q Quantity[U]) Unit() string {
	var u U
	return u.Symbol()
}

type wire struct {
	Value values.JSONFloat `json:"value"`
	Unit  string           `json:"unit"`
}

func (q Quantity[U]) MarshalJSON() ([]byte, error) {
	return j.Marshal(wire{Value: q.Value, Unit: q.Unit()})
}

func (q *Quantity[U]) UnmarshalJSON(b []byte) error {
	var w wire
	if err := j.Unmarshal(b, &w); err != nil {
		return err
	}
	if want := q.Unit(); NormalizeUnit(w.Unit) != want {
		return asmkit.InvalidEnumError("unit", w.Unit, []string{want})
	}
	q.Value = w.Value
	return nil
}

// Generic is a quantity whose unit is only known at runtime, as in calculated
// data results.
type Generic struct {
	Value     values.JSONFloat `json:"value"`
	UnitLabel string           `json:"unit"`
}

func (g Generic) Float() values.JSONFloat { return g.Value }
func (g Generic) Unit() string            { return g.UnitLabel }

var constructors = map[string]func(values.JSONFloat) Value{}

func register[U Unit]() {
	var u U
	constructors[u.Symbol()] = func(v values.JSONFloat) Value { return Quantity[U]{Value: v} }
}

// KnownUnits lists the unit symbols FromUnit accepts, sorted.
func KnownUnits() []string {
	out := make([]string, 0, len(constructors))
	for k := range constructors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// NormalizeUnit rewrites the Greek small letter mu (U+03BC) to the micro sign
// (U+00B5) used by ASM unit symbols.
func NormalizeUnit(unit string) string {
	return strings.ReplaceAll(strings.TrimSpace(unit), "μ", "µ")
}

// FromUnit resolves the quantity type from a unit symbol before wrapping v.
// It returns nil for a nil value and an invalid_enum error for unknown units.
func FromUnit(unit string, v *float64) (Value, error) {
	ctor, ok := constructors[NormalizeUnit(unit)]
	if !ok {
		return nil, asmkit.InvalidEnumError("unit", unit, KnownUnits())
	}
	if v == nil {
		return nil, nil
	}
	return ctor(values.JSONFloat(*v)), nil
}

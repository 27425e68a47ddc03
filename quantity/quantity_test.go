package quantity_test

import (
	"errors"
	"strings"
	"testing"

	j "github.com/goccy/go-json"

	asmkit "github.com/reoring/asmkit"
	"github.com/reoring/asmkit/quantity"
	"github.com/reoring/asmkit/values"
)

func TestOrNone(t *testing.T) {
	if q := quantity.OrNone[quantity.Percent](nil); q != nil {
		t.Fatalf("expected nil, got %+v", q)
	}
	zero := 0.0
	q := quantity.OrNone[quantity.Percent](&zero)
	if q == nil {
		t.Fatalf("zero must not be treated as absent")
	}
	if *q != (quantity.TQuantityValuePercent{Value: 0}) {
		t.Fatalf("got %+v", *q)
	}
	if q.Unit() != "%" {
		t.Fatalf("unit %q", q.Unit())
	}
}

func TestMarshal(t *testing.T) {
	b, err := j.Marshal(quantity.New[quantity.MillionCellsPerMilliliter](2.5))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"value":2.5,"unit":"10^6 cells/mL"}` {
		t.Fatalf("got %s", b)
	}
	nan := values.NaNValue()
	b, err = j.Marshal(quantity.OrNoneJSON[quantity.RelativeFluorescenceUnit](&nan))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"value":"NaN","unit":"RFU"}` {
		t.Fatalf("got %s", b)
	}
}

func TestUnmarshalChecksUnit(t *testing.T) {
	var q quantity.TQuantityValueMicrometer
	if err := j.Unmarshal([]byte(`{"value":11.2,"unit":"µm"}`), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if q.Value != 11.2 {
		t.Fatalf("got %v", q.Value)
	}
	err := j.Unmarshal([]byte(`{"value":11.2,"unit":"nm"}`), &q)
	if err == nil {
		t.Fatalf("expected unit mismatch error")
	}
}

func TestFromUnit(t *testing.T) {
	v := 3.0
	q, err := quantity.FromUnit("mAU", &v)
	if err != nil {
		t.Fatalf("FromUnit: %v", err)
	}
	if _, ok := q.(quantity.TQuantityValueMilliAbsorbanceUnit); !ok {
		t.Fatalf("unexpected type %T", q)
	}
	if q.Float() != 3 || q.Unit() != "mAU" {
		t.Fatalf("got %v %v", q.Float(), q.Unit())
	}

	for _, unit := range []string{"\u00b5L", "\u03bcL", "\u00b5m", "\u03bcm"} {
		q, err := quantity.FromUnit(unit, &v)
		if err != nil {
			t.Fatalf("FromUnit(%q): %v", unit, err)
		}
		if q.Unit() != quantity.NormalizeUnit(unit) || !strings.HasPrefix(q.Unit(), "\u00b5") {
			t.Fatalf("FromUnit(%q) unit %q", unit, q.Unit())
		}
	}

	q, err = quantity.FromUnit("s", nil)
	if err != nil || q != nil {
		t.Fatalf("nil value should give nil quantity, got %v %v", q, err)
	}

	_, err = quantity.FromUnit("furlong", &v)
	if !errors.Is(err, asmkit.ErrConversion) || asmkit.IssueCode(err) != asmkit.CodeInvalidEnum {
		t.Fatalf("expected invalid_enum conversion error, got %v", err)
	}
	iss, _ := asmkit.AsIssues(err)
	if acc, _ := iss[0].Params["accepted"].([]string); len(acc) != len(quantity.KnownUnits()) {
		t.Fatalf("expected accepted units in params, got %v", iss[0].Params)
	}
}

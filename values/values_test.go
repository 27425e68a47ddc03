package values_test

import (
	"errors"
	"math"
	"testing"

	j "github.com/goccy/go-json"

	asmkit "github.com/reoring/asmkit"
	"github.com/reoring/asmkit/values"
)

func TestParseFloat(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{" 42.5 ", 42.5, true},
		{"42%", 42, true},
		{"95.5 %", 95.5, true},
		{"1,234.5", 1234.5, true},
		{"0", 0, true},
		{"-0", 0, true},
		{"1e3", 1000, true},
		{"", 0, false},
		{"NaN", 0, false},
		{"N/A", 0, false},
		{"Inf", 0, false},
		{"1,5", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, ok := values.ParseFloat(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("ParseFloat(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNegativeZeroIsPresent(t *testing.T) {
	f := values.TryFloatOrNone("-0.0")
	if f == nil {
		t.Fatalf("-0.0 must be a present value")
	}
	if !math.Signbit(*f) {
		t.Fatalf("expected negative zero, got %v", *f)
	}
}

func TestTryFloat_ErrorIsConversion(t *testing.T) {
	_, err := values.TryFloat("abc", "viability")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, asmkit.ErrConversion) {
		t.Fatalf("expected conversion error class, got %v", err)
	}
	if err.Error() != "Invalid float string: 'abc'. (invalid_type at viability)" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestNumOrNaN(t *testing.T) {
	if values.NumOrNaN(nil).IsValid() {
		t.Fatalf("nil must map to NaN")
	}
	if v := values.NumOrNaN(values.Ptr(0.0)); !v.IsValid() || float64(v) != 0 {
		t.Fatalf("zero is a present value, got %v", v)
	}
}

func TestTryFloatOrNaN(t *testing.T) {
	if v := values.TryFloatOrNaN("12.5"); float64(v) != 12.5 {
		t.Fatalf("got %v", v)
	}
	for _, in := range []string{"NaN", "n/a", "-", "####"} {
		v := values.TryFloatOrNaN(in)
		if v.IsValid() {
			t.Fatalf("%q: expected NaN, got %v", in, v)
		}
	}
	if values.TryFloatOrNaNOrNone("  ") != nil {
		t.Fatalf("blank should be absent")
	}
	if v := values.TryFloatOrNaNOrNone("N/A"); v == nil || v.IsValid() {
		t.Fatalf("N/A should be present but invalid")
	}
}

func TestParseInt_Int64Bounds(t *testing.T) {
	for _, in := range []string{"9223372036854775808", "9.3e18", "-9.3e18"} {
		if i, ok := values.ParseInt(in); ok {
			t.Fatalf("ParseInt(%q) = %d, expected out of range", in, i)
		}
	}
	if i, ok := values.ParseInt("-9.223372036854775808e18"); !ok || i != math.MinInt64 {
		t.Fatalf("ParseInt(-2^63) = %d, %v", i, ok)
	}
	if i, ok := values.ParseInt("9223372036854775807"); !ok || i != math.MaxInt64 {
		t.Fatalf("ParseInt(MaxInt64) = %d, %v", i, ok)
	}
}

func TestParseIntAndBool(t *testing.T) {
	if i, err := values.TryInt("3.0", "n"); err != nil || i != 3 {
		t.Fatalf("TryInt(3.0) = %v, %v", i, err)
	}
	if _, err := values.TryInt("3.5", "n"); err == nil {
		t.Fatalf("expected error for 3.5")
	}
	if values.TryIntOrNone("x") != nil {
		t.Fatalf("expected nil")
	}
	for in, want := range map[string]bool{"Yes": true, "no": false, "TRUE": true, "0": false, "on": true} {
		b, err := values.TryBool(in, "flag")
		if err != nil || b != want {
			t.Fatalf("TryBool(%q) = %v, %v", in, b, err)
		}
	}
	if values.TryBoolOrNone("maybe") != nil {
		t.Fatalf("expected nil")
	}
}

func TestAssertNotNone(t *testing.T) {
	v, err := values.AssertNotNone(values.Ptr(1.5), "x")
	if err != nil || v != 1.5 {
		t.Fatalf("got %v, %v", v, err)
	}
	_, err = values.AssertNotNone[float64](nil, "sample identifier", "Unable to find sample identifier.")
	if asmkit.IssueCode(err) != asmkit.CodeRequired {
		t.Fatalf("expected required issue, got %v", err)
	}
	if err.Error() != "Unable to find sample identifier. (required at sample identifier)" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestJSONFloat_Marshal(t *testing.T) {
	type doc struct {
		A values.JSONFloat `json:"a"`
		B values.JSONFloat `json:"b"`
		C values.JSONFloat `json:"c"`
	}
	b, err := j.Marshal(doc{A: 1.5, B: values.NaNValue(), C: values.JSONFloat(math.Inf(-1))})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"a":1.5,"b":"NaN","c":"-Infinity"}` {
		t.Fatalf("got %s", b)
	}
	var back doc
	if err := j.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.A != 1.5 || back.B.IsValid() || !math.IsInf(float64(back.C), -1) {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestRandomUUIDStr(t *testing.T) {
	a, b := values.RandomUUIDStr(), values.RandomUUIDStr()
	if len(a) != 36 || a == b {
		t.Fatalf("unexpected ids %q %q", a, b)
	}
}

package asmkit_test

import (
	"testing"

	asmkit "github.com/reoring/asmkit"
)

func TestPointer(t *testing.T) {
	var root asmkit.Pointer
	if !root.IsRoot() || root.String() != "/" {
		t.Fatalf("zero value is the root")
	}
	p := root.Field("a/b").Index(2).Field("m~n")
	if got := p.String(); got != "/a~1b/2/m~0n" {
		t.Fatalf("got %q", got)
	}
	if !root.Field("").IsRoot() {
		t.Fatalf("an empty field name adds no segment")
	}
	if got := asmkit.ParsePointer("/x//y/").String(); got != "/x/y" {
		t.Fatalf("got %q", got)
	}
	base := root.Field("a")
	_ = base.Field("b")
	if base.String() != "/a" {
		t.Fatalf("Field must not mutate the receiver")
	}
}

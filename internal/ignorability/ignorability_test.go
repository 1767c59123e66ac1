package ignorability

import (
	"reflect"
	"testing"

	"github.com/funvibe/checkmate/internal/hir"
)

func TestIgnorableSign(t *testing.T) {
	if !IsIgnorable(hir.Hint{Sign: hir.SignIgnorable}) {
		t.Fatalf("SignIgnorable hint must be ignorable")
	}
}

func TestClassIsNotIgnorable(t *testing.T) {
	h := hir.Classify(reflect.TypeOf(0))
	if IsIgnorable(h) {
		t.Fatalf("a concrete Class hint must not be ignorable")
	}
}

func TestGenericMarkerWithAllTypeVarsIsIgnorable(t *testing.T) {
	h := hir.Classify(hir.Generic{
		Origin: hir.GenericMarker,
		Args:   []any{hir.TypeVar{Name: "T"}, hir.TypeVar{Name: "U"}},
	})
	if !IsIgnorable(h) {
		t.Fatalf("Generic(GenericMarker, all TypeVars) should be ignorable")
	}
}

func TestGenericWithConcreteOriginIsNotIgnorable(t *testing.T) {
	h := hir.Classify(hir.Generic{
		Origin: reflect.TypeOf([]int{}),
		Args:   []any{reflect.TypeOf(0)},
	})
	if IsIgnorable(h) {
		t.Fatalf("Generic with a concrete origin must not be ignorable")
	}
}

func TestGenericMarkerWithConcreteArgIsNotIgnorable(t *testing.T) {
	h := hir.Classify(hir.Generic{
		Origin: hir.GenericMarker,
		Args:   []any{reflect.TypeOf(0)},
	})
	if IsIgnorable(h) {
		t.Fatalf("Generic(GenericMarker, concrete arg) must not be ignorable")
	}
}

func TestNewTypeIsIgnorableIffAliasIs(t *testing.T) {
	ignorableAlias := hir.Classify(hir.NewType{Name: "N", AliasOf: nil})
	if !IsIgnorable(ignorableAlias) {
		t.Fatalf("NewType aliasing Any should be ignorable")
	}

	concreteAlias := hir.Classify(hir.NewType{Name: "N", AliasOf: reflect.TypeOf(0)})
	if IsIgnorable(concreteAlias) {
		t.Fatalf("NewType aliasing a concrete class must not be ignorable")
	}
}

func TestUnionIsIgnorableIfAnyChildIs(t *testing.T) {
	h := hir.Classify(hir.Union{reflect.TypeOf(0), nil})
	if !IsIgnorable(h) {
		t.Fatalf("union containing an ignorable arm should be ignorable")
	}

	narrow := hir.Classify(hir.Union{reflect.TypeOf(0), reflect.TypeOf("")})
	if IsIgnorable(narrow) {
		t.Fatalf("union of two concrete classes must not be ignorable")
	}
}

package checkmate

import (
	"reflect"
	"testing"

	"github.com/funvibe/checkmate/internal/cache"
	"github.com/funvibe/checkmate/internal/diagnostics"
	"github.com/funvibe/checkmate/internal/sig"
)

func greet(name string) string { return "hi " + name }

func TestDecorateAndCall(t *testing.T) {
	cache.ResetWrappedMarker()
	s := sig.Signature{Params: []sig.Param{{Name: "name", Kind: sig.PositionalOrKeyword}}}
	d, err := Decorate(greet, "greet", s, Hints{"name": reflect.TypeOf("")}, reflect.TypeOf(""))
	if err != nil {
		t.Fatalf("Decorate: %v", err)
	}
	result, err := d.Call([]any{"bob"}, nil)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result.(string) != "hi bob" {
		t.Fatalf("got %q, want %q", result, "hi bob")
	}
}

func TestDecorateRejectsReservedHintName(t *testing.T) {
	cache.ResetWrappedMarker()
	s := sig.Signature{Params: []sig.Param{{Name: "x", Kind: sig.PositionalOrKeyword}}}
	_, err := Decorate(greet, "greet2", s, Hints{"__checkmate_x": reflect.TypeOf("")}, nil)
	if err == nil {
		t.Fatalf("a reserved-prefixed hint name should be rejected")
	}
	if !diagnostics.Is(err, diagnostics.CodeInvalidParamName) {
		t.Fatalf("got %v, want CodeInvalidParamName", err)
	}
}

func TestDecorateRejectsReservedParamNameEvenUnannotated(t *testing.T) {
	cache.ResetWrappedMarker()
	reserved := func(__checkmate_x string) string { return __checkmate_x }
	s := sig.Signature{Params: []sig.Param{{Name: "__checkmate_x", Kind: sig.PositionalOrKeyword}}}
	_, err := Decorate(reserved, "reserved", s, Hints{}, nil)
	if err == nil {
		t.Fatalf("a reserved-prefixed parameter should be rejected even with no hint supplied for it")
	}
	if !diagnostics.Is(err, diagnostics.CodeInvalidParamName) {
		t.Fatalf("got %v, want CodeInvalidParamName", err)
	}
}

func TestDecorateIsIdempotent(t *testing.T) {
	cache.ResetWrappedMarker()
	greet3 := func(name string) string { return "hi " + name }
	s := sig.Signature{Params: []sig.Param{{Name: "name", Kind: sig.PositionalOrKeyword}}}
	d1, err := Decorate(greet3, "greet3", s, Hints{"name": reflect.TypeOf("")}, nil)
	if err != nil {
		t.Fatalf("Decorate: %v", err)
	}
	d2, err := Decorate(greet3, "greet3", s, Hints{"name": reflect.TypeOf("")}, nil)
	if err != nil {
		t.Fatalf("second Decorate: %v", err)
	}
	if d1.w != d2.w {
		t.Fatalf("decorating the same function twice should return the same underlying wrapper")
	}
}

func TestDecorateRejectsTypeMismatch(t *testing.T) {
	cache.ResetWrappedMarker()
	greet4 := func(name string) string { return "hi " + name }
	s := sig.Signature{Params: []sig.Param{{Name: "name", Kind: sig.PositionalOrKeyword}}}
	d, err := Decorate(greet4, "greet4", s, Hints{"name": reflect.TypeOf("")}, nil)
	if err != nil {
		t.Fatalf("Decorate: %v", err)
	}
	if _, err := d.Call([]any{42}, nil); err == nil {
		t.Fatalf("passing an int where a string is expected should fail")
	}
}

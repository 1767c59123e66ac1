package synth

import (
	"reflect"
	"testing"

	"github.com/funvibe/checkmate/internal/cache"
	"github.com/funvibe/checkmate/internal/hir"
	"github.com/funvibe/checkmate/internal/validator"
)

func TestMatchesHintTuple(t *testing.T) {
	h := hir.Classify([]any{reflect.TypeOf(0), reflect.TypeOf("")})
	ok, err := matchesHint(h, 1, cache.DefaultRegistry())
	if err != nil || !ok {
		t.Fatalf("1 should match (int, string): ok=%v err=%v", ok, err)
	}
	ok, err = matchesHint(h, "s", cache.DefaultRegistry())
	if err != nil || !ok {
		t.Fatalf("\"s\" should match (int, string): ok=%v err=%v", ok, err)
	}
	ok, err = matchesHint(h, 1.5, cache.DefaultRegistry())
	if err != nil || ok {
		t.Fatalf("1.5 should not match (int, string): ok=%v err=%v", ok, err)
	}
}

func TestMatchesHintForwardRefResolvesLazily(t *testing.T) {
	reg := cache.NewTypeRegistry()
	h := hir.Classify(hir.ForwardRef{Name: "widget.Gadget"})
	if _, err := matchesHint(h, 1, reg); err == nil {
		t.Fatalf("unregistered forward ref should fail to resolve")
	}
	reg.Register("widget.Gadget", reflect.TypeOf(0))
	ok, err := matchesHint(h, 1, reg)
	if err != nil || !ok {
		t.Fatalf("1 should match registered Gadget=int: ok=%v err=%v", ok, err)
	}
}

func TestMatchesHintNewType(t *testing.T) {
	h := hir.Classify(hir.NewType{Name: "UserID", AliasOf: reflect.TypeOf(0)})
	ok, err := matchesHint(h, 5, cache.DefaultRegistry())
	if err != nil || !ok {
		t.Fatalf("5 should satisfy NewType(UserID, int): ok=%v err=%v", ok, err)
	}
	ok, _ = matchesHint(h, "5", cache.DefaultRegistry())
	if ok {
		t.Fatalf("a string should not satisfy NewType(UserID, int)")
	}
}

func TestMatchesHintAttrValidator(t *testing.T) {
	type box struct{ N int }
	inner := validator.NewEquality(3)
	v, err := validator.NewAttr("N", inner)
	if err != nil {
		t.Fatalf("NewAttr: %v", err)
	}
	h := hir.Classify(v)
	ok, err := matchesHint(h, box{N: 3}, cache.DefaultRegistry())
	if err != nil || !ok {
		t.Fatalf("box{N:3} should satisfy IsAttr[N, IsEqual[3]]: ok=%v err=%v", ok, err)
	}
	ok, _ = matchesHint(h, box{N: 4}, cache.DefaultRegistry())
	if ok {
		t.Fatalf("box{N:4} should not satisfy IsAttr[N, IsEqual[3]]")
	}
}

func TestIsInstanceInterfaceSatisfaction(t *testing.T) {
	errType := reflect.TypeOf((*error)(nil)).Elem()
	if !isInstance(errSentinel{}, errType) {
		t.Fatalf("errSentinel should satisfy the error interface")
	}
	if isInstance(42, errType) {
		t.Fatalf("42 should not satisfy the error interface")
	}
}

type errSentinel struct{}

func (errSentinel) Error() string { return "sentinel" }

func TestTruncateLongRepr(t *testing.T) {
	long := make([]byte, 1000)
	for i := range long {
		long[i] = 'a'
	}
	out := truncate(string(long))
	if len(out) >= 1000 {
		t.Fatalf("truncate should shorten a long repr, got length %d", len(out))
	}
}

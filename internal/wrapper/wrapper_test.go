package wrapper

import (
	"reflect"
	"testing"

	"github.com/funvibe/checkmate/internal/cache"
	"github.com/funvibe/checkmate/internal/hir"
	"github.com/funvibe/checkmate/internal/sig"
	"github.com/funvibe/checkmate/internal/synth"
)

func add(a, b int) int { return a + b }

func intPlan(t *testing.T, funcLabel string) *synth.Plan {
	t.Helper()
	s := sig.Signature{Params: []sig.Param{
		{Name: "a", Kind: sig.PositionalOrKeyword},
		{Name: "b", Kind: sig.PositionalOrKeyword},
	}}
	intHint := hir.Classify(reflect.TypeOf(0))
	params := map[string]synth.LabeledHint{
		"a": {Hint: intHint, Label: "a"},
		"b": {Hint: intHint, Label: "b"},
	}
	ret := synth.LabeledHint{Hint: intHint, Label: "return"}
	plan, err := synth.Synthesize(funcLabel, s, params, &ret, cache.DefaultRegistry())
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	return plan
}

func TestInstantiateAndCall(t *testing.T) {
	cache.ResetWrappedMarker()
	plan := intPlan(t, "@checkmate add()")
	w, err := Instantiate(add, "add", "", plan)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	result, err := w.Call([]any{1, 2}, nil)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result.(int) != 3 {
		t.Fatalf("got %v, want 3", result)
	}
}

func TestCallRejectsBadParam(t *testing.T) {
	cache.ResetWrappedMarker()
	plan := intPlan(t, "@checkmate add2()")
	add2 := func(a, b int) int { return a + b }
	w, err := Instantiate(add2, "add2", "", plan)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	if _, err := w.Call([]any{"bad", 2}, nil); err == nil {
		t.Fatalf("a string first argument should be rejected")
	}
}

func TestInstantiateIsIdempotent(t *testing.T) {
	cache.ResetWrappedMarker()
	plan := intPlan(t, "@checkmate add3()")
	add3 := func(a, b int) int { return a + b }
	w1, err := Instantiate(add3, "add3", "", plan)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	w2, err := Instantiate(add3, "add3", "", plan)
	if err != nil {
		t.Fatalf("second Instantiate: %v", err)
	}
	if w1 != w2 {
		t.Fatalf("decorating the same function twice should return the same wrapper")
	}
}

func TestCallSuspensionChannel(t *testing.T) {
	cache.ResetWrappedMarker()
	s := sig.Signature{}
	intHint := hir.Classify(reflect.TypeOf(0))
	ret := synth.LabeledHint{Hint: intHint, Label: "return"}
	plan, err := synth.Synthesize("@checkmate gen()", s, nil, &ret, cache.DefaultRegistry())
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	gen := func() <-chan int {
		ch := make(chan int, 3)
		ch <- 1
		ch <- 2
		ch <- 3
		close(ch)
		return ch
	}
	w, err := Instantiate(gen, "gen", "", plan)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	result, err := w.Call(nil, nil)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	forward, ok := result.(chan int)
	if !ok {
		t.Fatalf("expected a forwarding channel, got %T", result)
	}
	var got []int
	for v := range forward {
		got = append(got, v)
	}
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("got %v, want [1 2 3]", got)
	}
}

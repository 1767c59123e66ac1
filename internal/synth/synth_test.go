package synth

import (
	"reflect"
	"testing"

	"github.com/funvibe/checkmate/internal/cache"
	"github.com/funvibe/checkmate/internal/config"
	"github.com/funvibe/checkmate/internal/hir"
	"github.com/funvibe/checkmate/internal/sig"
)

func intHint(label string) LabeledHint {
	return LabeledHint{Hint: hir.Classify(reflect.TypeOf(0)), Label: label}
}

func TestSynthesizePositionalOrKeyword(t *testing.T) {
	s := sig.Signature{Params: []sig.Param{{Name: "x", Kind: sig.PositionalOrKeyword}}}
	params := map[string]LabeledHint{"x": intHint("x")}
	plan, err := Synthesize("f()", s, params, nil, cache.DefaultRegistry())
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(plan.Params) != 1 {
		t.Fatalf("got %d param checks, want 1", len(plan.Params))
	}
	if err := plan.Params[0].Check([]any{1}, nil); err != nil {
		t.Fatalf("1 should satisfy int: %v", err)
	}
	if err := plan.Params[0].Check([]any{"nope"}, nil); err == nil {
		t.Fatalf("a string should not satisfy int")
	}
	if err := plan.Params[0].Check(nil, map[string]any{"x": 1}); err != nil {
		t.Fatalf("keyword-passed positional-or-keyword param should still be checked: %v", err)
	}
}

func TestSynthesizeVarPositionalIndexedErrors(t *testing.T) {
	s := sig.Signature{Params: []sig.Param{
		{Name: "first", Kind: sig.PositionalOrKeyword},
		{Name: "rest", Kind: sig.VarPositional},
	}}
	params := map[string]LabeledHint{
		"first": intHint("first"),
		"rest":  intHint("rest"),
	}
	plan, err := Synthesize("f()", s, params, nil, cache.DefaultRegistry())
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	restCheck := plan.Params[1]
	if err := restCheck.Check([]any{1, 2, 3}, nil); err != nil {
		t.Fatalf("all-int variadic args should pass: %v", err)
	}
	err = restCheck.Check([]any{1, 2, "bad"}, nil)
	if err == nil {
		t.Fatalf("a non-int variadic arg should fail")
	}
}

func TestSynthesizeKeywordOnly(t *testing.T) {
	s := sig.Signature{Params: []sig.Param{{Name: "k", Kind: sig.KeywordOnly}}}
	params := map[string]LabeledHint{"k": intHint("k")}
	plan, err := Synthesize("f()", s, params, nil, cache.DefaultRegistry())
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if err := plan.Params[0].Check(nil, map[string]any{"k": 5}); err != nil {
		t.Fatalf("5 should satisfy int: %v", err)
	}
	if err := plan.Params[0].Check(nil, map[string]any{"k": "bad"}); err == nil {
		t.Fatalf("a string should not satisfy int")
	}
	if err := plan.Params[0].Check(nil, nil); err != nil {
		t.Fatalf("an absent keyword-only arg should not fail (no default handling here)")
	}
}

func TestSynthesizeReturnCheck(t *testing.T) {
	s := sig.Signature{}
	ret := intHint("return")
	plan, err := Synthesize("f()", s, nil, &ret, cache.DefaultRegistry())
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if plan.Return == nil {
		t.Fatalf("expected a return check to be synthesized")
	}
	if err := plan.Return.Check(1); err != nil {
		t.Fatalf("1 should satisfy int: %v", err)
	}
	if err := plan.Return.Check("bad"); err == nil {
		t.Fatalf("a string should not satisfy int")
	}
}

func TestSynthesizeStrictVarKeywordChecksUnclaimedKwargs(t *testing.T) {
	old := config.StrictVarKeyword
	config.StrictVarKeyword = true
	defer func() { config.StrictVarKeyword = old }()

	s := sig.Signature{Params: []sig.Param{
		{Name: "first", Kind: sig.PositionalOrKeyword},
		{Name: "extra", Kind: sig.VarKeyword},
	}}
	params := map[string]LabeledHint{
		"first": intHint("first"),
		"extra": intHint("extra"),
	}
	plan, err := Synthesize("f()", s, params, nil, cache.DefaultRegistry())
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(plan.Params) != 2 {
		t.Fatalf("got %d param checks, want 2", len(plan.Params))
	}
	extraCheck := plan.Params[1]

	kwargs := map[string]any{"first": 1, "other": 2}
	if err := extraCheck.Check(nil, kwargs); err != nil {
		t.Fatalf("unclaimed kwarg matching the hint should pass, and the claimed name should be skipped: %v", err)
	}

	kwargs = map[string]any{"first": 1, "other": "bad"}
	if err := extraCheck.Check(nil, kwargs); err == nil {
		t.Fatalf("an unclaimed kwarg violating the hint should fail")
	}
}

func TestSynthesizeSkipsIgnorableHints(t *testing.T) {
	s := sig.Signature{Params: []sig.Param{{Name: "x", Kind: sig.PositionalOrKeyword}}}
	params := map[string]LabeledHint{"x": {Hint: hir.Hint{Sign: hir.SignIgnorable}, Label: "x"}}
	plan, err := Synthesize("f()", s, params, nil, cache.DefaultRegistry())
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(plan.Params) != 0 {
		t.Fatalf("an ignorable hint should produce no check, got %d", len(plan.Params))
	}
}

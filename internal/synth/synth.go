// Package synth implements the Wrapper Code Synthesizer (spec §4.5).
//
// Go has no exec/compile-from-source-string equivalent, so per spec §9's
// re-architecture guidance ("replace by building a small statement tree and
// translating it to a real function via codegen at decorate time, or by a
// dispatch table of pre-written check closures composed at decoration
// time"), this package takes the second option: Synthesize walks a
// Signature once at decoration time and builds an ordered slice of check
// closures (a Plan) that the wrapper (internal/wrapper) executes in order
// at call time. The plan also renders a human-readable trace string
// (Plan.Source) purely for ParseError debugging context -- mirroring the
// original's embedded generated-source-on-failure policy (spec §4.6, §7)
// without ever evaluating that string.
package synth

import (
	"fmt"
	"strings"

	"github.com/funvibe/checkmate/internal/cache"
	"github.com/funvibe/checkmate/internal/config"
	"github.com/funvibe/checkmate/internal/diagnostics"
	"github.com/funvibe/checkmate/internal/hir"
	"github.com/funvibe/checkmate/internal/ignorability"
	"github.com/funvibe/checkmate/internal/sig"
)

// LabeledHint pairs a classified hint with the human-readable label used
// in error messages (e.g. `"@checkmate f() parameter \"x\" type annotation"`).
type LabeledHint struct {
	Hint  hir.Hint
	Label string
}

// ParamCheck is one compiled, ready-to-run parameter check.
type ParamCheck struct {
	Name  string
	Index int
	Kind  sig.ParamKind
	Hint  hir.Hint
	Check func(args []any, kwargs map[string]any) error
}

// ReturnCheck is the compiled return-value check, if any.
type ReturnCheck struct {
	Hint  hir.Hint
	Check func(result any) error
}

// Plan is the assembled output of Synthesize: an ordered list of parameter
// checks plus an optional return check, ready for internal/wrapper to
// execute at call time.
type Plan struct {
	Params []ParamCheck
	Return *ReturnCheck
	Source string // rendered trace, for ParseError / verbose logging only
}

// Synthesize builds a Plan for callable funcLabel given its Signature, a
// per-parameter hint map, and an optional return hint. Hints passed in
// params/ret are assumed to already have passed hir.Validate -- "the
// synthesizer never re-validates shape" (spec §3 Invariants).
func Synthesize(
	funcLabel string,
	s sig.Signature,
	params map[string]LabeledHint,
	ret *LabeledHint,
	registry *cache.TypeRegistry,
) (*Plan, error) {
	plan := &Plan{}
	var trace strings.Builder
	fmt.Fprintf(&trace, "def %s(*args, **kwargs):\n", funcLabel)

	for idx, p := range s.Params {
		lh, ok := params[p.Name]
		if !ok {
			continue
		}
		if ignorability.IsIgnorable(lh.Hint) {
			continue
		}
		if p.Kind == sig.PositionalOnly && !config.StrictPositionalOnly {
			fmt.Fprintf(&trace, "    # %s: positional-only, unchecked (strict mode off)\n", p.Name)
			continue
		}
		if p.Kind == sig.VarKeyword && !config.StrictVarKeyword {
			fmt.Fprintf(&trace, "    # %s: variadic-keyword, unchecked (strict mode off)\n", p.Name)
			continue
		}

		check := buildParamCheck(funcLabel, s, p, idx, lh, registry)
		plan.Params = append(plan.Params, check)
		fmt.Fprintf(&trace, "    check %s %s against %s\n", p.Kind, p.Name, lh.Hint.String())
	}

	fmt.Fprintf(&trace, "    result = __checkmate_func(*args, **kwargs)\n")

	if ret != nil && !ignorability.IsIgnorable(ret.Hint) {
		rh := ret.Hint
		label := ret.Label
		plan.Return = &ReturnCheck{
			Hint: rh,
			Check: func(result any) error {
				ok, err := matchesHint(rh, result, registry)
				if err != nil {
					return diagnostics.ForwardRefError(rh.Name, err)
				}
				if !ok {
					return diagnostics.ReturnTypeError(funcLabel, fmt.Sprintf("expected %s, got %s", rh.String(), describe(result)))
				}
				return nil
			},
		}
		fmt.Fprintf(&trace, "    check return against %s (%s)\n", rh.String(), label)
	}
	fmt.Fprintf(&trace, "    return result\n")

	plan.Source = trace.String()
	return plan, nil
}

func buildParamCheck(funcLabel string, s sig.Signature, p sig.Param, index int, lh LabeledHint, registry *cache.TypeRegistry) ParamCheck {
	h := lh.Hint
	name := p.Name

	switch p.Kind {
	case sig.VarKeyword:
		// Only reached when config.StrictVarKeyword is on (see Synthesize).
		// A VarKeyword parameter is the **kwargs catch-all itself, not a
		// single named slot, so it must check every kwarg not claimed by
		// one of the callable's other declared named parameters -- unlike
		// the PositionalOrKeyword/KeywordOnly cases below, which each own
		// exactly one name.
		claimed := make(map[string]struct{}, len(s.Params))
		for _, other := range s.Params {
			if other.Kind != sig.VarKeyword && other.Kind != sig.VarPositional {
				claimed[other.Name] = struct{}{}
			}
		}
		return ParamCheck{
			Name: name, Index: index, Kind: p.Kind, Hint: h,
			Check: func(args []any, kwargs map[string]any) error {
				for k, v := range kwargs {
					if _, ok := claimed[k]; ok {
						continue
					}
					ok, err := matchesHint(h, v, registry)
					if err != nil {
						return diagnostics.ForwardRefError(h.Name, err)
					}
					if !ok {
						return diagnostics.ParamTypeError(funcLabel,
							fmt.Sprintf("%s[%q]", name, k),
							fmt.Sprintf("expected %s, got %s", h.String(), describe(v)))
					}
				}
				return nil
			},
		}
	case sig.VarPositional:
		return ParamCheck{
			Name: name, Index: index, Kind: p.Kind, Hint: h,
			Check: func(args []any, kwargs map[string]any) error {
				for i := index; i < len(args); i++ {
					variadicIdx := i - index
					ok, err := matchesHint(h, args[i], registry)
					if err != nil {
						return diagnostics.ForwardRefError(h.Name, err)
					}
					if !ok {
						return diagnostics.ParamTypeError(funcLabel,
							fmt.Sprintf("%s[%d]", name, variadicIdx),
							fmt.Sprintf("expected %s, got %s", h.String(), describe(args[i])))
					}
				}
				return nil
			},
		}

	case sig.KeywordOnly:
		return ParamCheck{
			Name: name, Index: index, Kind: p.Kind, Hint: h,
			Check: func(args []any, kwargs map[string]any) error {
				v, present := kwargs[name]
				if !present {
					return nil
				}
				ok, err := matchesHint(h, v, registry)
				if err != nil {
					return diagnostics.ForwardRefError(h.Name, err)
				}
				if !ok {
					return diagnostics.ParamTypeError(funcLabel, name,
						fmt.Sprintf("expected %s, got %s", h.String(), describe(v)))
				}
				return nil
			},
		}

	case sig.PositionalOnly:
		// Only reached when config.StrictPositionalOnly is on (see Synthesize).
		fallthrough

	default: // PositionalOrKeyword
		return ParamCheck{
			Name: name, Index: index, Kind: p.Kind, Hint: h,
			Check: func(args []any, kwargs map[string]any) error {
				var v any
				var present bool
				if index < len(args) {
					v, present = args[index], true
				} else if kv, ok := kwargs[name]; ok {
					v, present = kv, true
				}
				if !present {
					return nil
				}
				ok, err := matchesHint(h, v, registry)
				if err != nil {
					return diagnostics.ForwardRefError(h.Name, err)
				}
				if !ok {
					return diagnostics.ParamTypeError(funcLabel, name,
						fmt.Sprintf("expected %s, got %s", h.String(), describe(v)))
				}
				return nil
			},
		}
	}
}

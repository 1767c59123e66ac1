// Package checkmate implements the core of a runtime type-checking
// decorator: given a Go function value annotated with hints (supplied
// explicitly, since Go has no PEP 484-style annotation objects), Decorate
// produces a wrapped function that validates actual arguments and return
// values against those hints on every invocation, raising precise errors
// on mismatch.
//
// This is the Go-native re-implementation of the decorator core described
// by the accompanying specification, built from funxy's lexer/parser/
// analyzer/typesystem-adjacent idioms adapted to a single, self-contained
// decoration mechanism rather than a language toolchain.
package checkmate

import (
	"fmt"
	"strings"

	"github.com/funvibe/checkmate/internal/cache"
	"github.com/funvibe/checkmate/internal/config"
	"github.com/funvibe/checkmate/internal/diagnostics"
	"github.com/funvibe/checkmate/internal/hir"
	"github.com/funvibe/checkmate/internal/sig"
	"github.com/funvibe/checkmate/internal/synth"
	"github.com/funvibe/checkmate/internal/wrapper"
)

// Hints maps parameter name to raw hint value, the explicit Go substitute
// for Python's per-callable __annotations__ dict (spec §3 "Callable
// shape"). Hint values are whatever internal/hir.Classify accepts: a
// reflect.Type, a NameRef string, a []any tuple, a hir.Union, hir.Generic,
// hir.NewType, hir.ForwardRef, or a validator.Validator composite.
type Hints map[string]any

// Option configures a single Decorate call.
type Option func(*options)

type options struct {
	doc      string
	registry *cache.TypeRegistry
}

// WithDoc attaches a documentation string copied onto the wrapper, since Go
// has no runtime doc-string introspection for function values (spec §4.6
// "copy identifying metadata").
func WithDoc(doc string) Option {
	return func(o *options) { o.doc = doc }
}

// WithRegistry overrides the process-wide default forward-reference
// registry used to resolve NameRef/ForwardRef hints.
func WithRegistry(r *cache.TypeRegistry) Option {
	return func(o *options) { o.registry = r }
}

// Decorated is the callable surface returned by Decorate: a type-checked
// wrapper plus its underlying plan, for callers that want to invoke it
// through the generic (args, kwargs) convention described by spec §3 rather
// than through reflect.MakeFunc's same-signature stub (see Wrap for that).
type Decorated struct {
	w *wrapper.Wrapper
}

// Call invokes the decorated callable, validating args positionally and
// kwargs by name, per the parameter-kind rules of spec §4.5.
func (d *Decorated) Call(args []any, kwargs map[string]any) (any, error) {
	return d.w.Call(args, kwargs)
}

// Name returns the decorated callable's name.
func (d *Decorated) Name() string { return d.w.Name }

// Decorate is the core decorator entry point (spec §6 "Decorator entry").
//
// name is the callable's identifying name (used in error labels and,
// absent Go doc-comment introspection, as Wrapper.Name). s is the
// callable's Signature (spec §3). hints supplies each checked parameter's
// annotation; returnHint is the return annotation, or nil for none.
//
// When config.OptimizedMode is set, Decorate reduces to the identity: it
// returns a Decorated that forwards every call unchecked, with no plan
// assembled at all (spec §4.7).
func Decorate(original any, name string, s sig.Signature, hints Hints, returnHint any, opts ...Option) (*Decorated, error) {
	o := &options{registry: cache.DefaultRegistry()}
	for _, opt := range opts {
		opt(o)
	}

	funcLabel := fmt.Sprintf("@checkmate %s()", name)

	if err := checkReservedNames(s, hints); err != nil {
		return nil, err
	}

	if config.OptimizedMode {
		plan := &synth.Plan{Source: fmt.Sprintf("def %s(*args, **kwargs):\n    return __checkmate_func(*args, **kwargs)\n", funcLabel)}
		w, err := wrapper.Instantiate(original, name, o.doc, plan)
		if err != nil {
			return nil, err
		}
		return &Decorated{w: w}, nil
	}

	if existing, ok := cache.AlreadyWrapped(original); ok {
		return &Decorated{w: existing.(*wrapper.Wrapper)}, nil
	}

	labeled := make(map[string]synth.LabeledHint, len(hints))
	for _, p := range s.Params {
		raw, ok := hints[p.Name]
		if !ok {
			continue
		}
		label := fmt.Sprintf("%s parameter %q type annotation", funcLabel, p.Name)
		h := cache.Classify(raw)
		if err := hir.Validate(h, label, true); err != nil {
			return nil, err
		}
		labeled[p.Name] = synth.LabeledHint{Hint: h, Label: label}
	}

	var retLH *synth.LabeledHint
	if returnHint != nil {
		label := fmt.Sprintf("%s return type annotation", funcLabel)
		h := cache.Classify(returnHint)
		if err := hir.Validate(h, label, true); err != nil {
			return nil, err
		}
		retLH = &synth.LabeledHint{Hint: h, Label: label}
	}

	plan, err := synth.Synthesize(funcLabel, s, labeled, retLH, o.registry)
	if err != nil {
		return nil, diagnostics.ParseError(funcLabel, plan.Source)
	}

	w, err := wrapper.Instantiate(original, name, o.doc, plan)
	if err != nil {
		return nil, err
	}
	return &Decorated{w: w}, nil
}

// checkReservedNames rejects any parameter whose name begins with the
// reserved prefix (spec §6 "Reserved names"), regardless of whether that
// parameter carries a hint at all -- the reservation is on the callable's
// shape, not on what's annotated. Also covers reserved hint keys that don't
// correspond to any declared parameter, so a caller can't sidestep the
// check by annotating a name absent from s.Params.
func checkReservedNames(s sig.Signature, hints Hints) error {
	for _, p := range s.Params {
		if strings.HasPrefix(p.Name, config.ReservedPrefix) {
			return diagnostics.InvalidParamNameError(p.Name)
		}
	}
	for name := range hints {
		if strings.HasPrefix(name, config.ReservedPrefix) {
			return diagnostics.InvalidParamNameError(name)
		}
	}
	return nil
}

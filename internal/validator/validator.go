// Package validator implements the Validator Algebra (spec §4.4): a
// compositional value-validator model whose instances expose both an
// eagerly-callable predicate and an inlinable code fragment plus
// captured-scope mapping, so compound validators fold into a single
// generated expression with no extra call frames.
//
// Grounded on beartype's IsAttr/IsEqual composition
// (original_source/beartype/vale/_valeisobj.py) and on the closure-wrapping
// style of this teacher's internal/evaluator builtin registration.
package validator

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// Scope is the captured-scope mapping: generated identifier -> runtime
// value that must be present when Code's fragment is rendered/evaluated.
// In this Go port the "evaluation" is the closure built by Code's caller
// (internal/synth), not a textual eval, but the shape of the contract is
// unchanged from the spec: a flat map from unique identifier to value.
type Scope map[string]any

// Validator is the compositional unit exposed by every leaf and composite
// validator (spec §4.4).
type Validator interface {
	// IsValid is the eager predicate: value -> bool.
	IsValid(v any) bool
	// Code renders a templated expression fragment for tracing/debugging,
	// taking placeholders for the object under test and the indent level.
	Code(obj, indent string) string
	// Locals returns the names/values that must be present in the
	// evaluating scope.
	Locals() Scope
}

// mergeScopes merges two scopes with duplicate-key detection: duplicates
// with equal value are allowed; duplicates with unequal value are an error
// (spec §4.4 "Composition rules").
func mergeScopes(a, b Scope) (Scope, error) {
	out := make(Scope, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		if existing, ok := out[k]; ok && !equalRuntime(existing, v) {
			return nil, fmt.Errorf("captured-scope key %q bound to conflicting values", k)
		}
		out[k] = v
	}
	return out, nil
}

func equalRuntime(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() == reflect.Func && vb.Kind() == reflect.Func {
		// Func values are not comparable with ==; a generated key is only
		// ever bound to one func, so the same code pointer means the same value.
		return va.Type() == vb.Type() && va.Pointer() == vb.Pointer()
	}
	defer func() { recover() }()
	return a == b
}

func freshName(prefix string) string {
	return fmt.Sprintf("__checkmate_%s_%s", prefix, uuid.NewString()[:8])
}

// --- conjunction / disjunction / negation -----------------------------------

type andValidator struct {
	a, b  Validator
	scope Scope
}

// And wraps two validators as "(A and B)" (spec §4.4).
func And(a, b Validator) Validator {
	scope, err := mergeScopes(a.Locals(), b.Locals())
	if err != nil {
		// Composition is only ever built at decoration time from already
		// type-checked validators; a genuine conflict here is a caller bug,
		// surfaced to the caller rather than panicking so decoration-time
		// error handling stays uniform.
		return &brokenValidator{err: err}
	}
	return &andValidator{a: a, b: b, scope: scope}
}

func (v *andValidator) IsValid(x any) bool { return v.a.IsValid(x) && v.b.IsValid(x) }
func (v *andValidator) Code(obj, indent string) string {
	return fmt.Sprintf("(%s and %s)", v.a.Code(obj, indent), v.b.Code(obj, indent))
}
func (v *andValidator) Locals() Scope { return v.scope }

type orValidator struct {
	a, b  Validator
	scope Scope
}

// Or wraps two validators as "(A or B)".
func Or(a, b Validator) Validator {
	scope, err := mergeScopes(a.Locals(), b.Locals())
	if err != nil {
		return &brokenValidator{err: err}
	}
	return &orValidator{a: a, b: b, scope: scope}
}

func (v *orValidator) IsValid(x any) bool { return v.a.IsValid(x) || v.b.IsValid(x) }
func (v *orValidator) Code(obj, indent string) string {
	return fmt.Sprintf("(%s or %s)", v.a.Code(obj, indent), v.b.Code(obj, indent))
}
func (v *orValidator) Locals() Scope { return v.scope }

type notValidator struct {
	inner Validator
}

// Not wraps a validator as "(not A)".
func Not(inner Validator) Validator {
	return &notValidator{inner: inner}
}

func (v *notValidator) IsValid(x any) bool { return !v.inner.IsValid(x) }
func (v *notValidator) Code(obj, indent string) string {
	return fmt.Sprintf("(not %s)", v.inner.Code(obj, indent))
}
func (v *notValidator) Locals() Scope { return v.inner.Locals() }

// brokenValidator surfaces a composition-time merge conflict (spec §4.4)
// as a validator that always fails with an explanatory message, so the
// conflict is detected wherever the composed validator is first exercised
// instead of panicking deep inside composition helpers.
type brokenValidator struct{ err error }

func (v *brokenValidator) IsValid(any) bool               { return false }
func (v *brokenValidator) Code(obj, indent string) string { return fmt.Sprintf("(False # %s)", v.err) }
func (v *brokenValidator) Locals() Scope                  { return nil }

// Err returns the merge-conflict error carried by a broken validator, or
// nil if v did not come from a failed composition.
func Err(v Validator) error {
	if b, ok := v.(*brokenValidator); ok {
		return b.err
	}
	return nil
}

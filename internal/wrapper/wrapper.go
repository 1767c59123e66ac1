// Package wrapper implements the Wrapper Instantiator (spec §4.6):
// materializing an assembled synth.Plan into a live callable, copying
// identifying metadata from the wrapped callable, and enforcing decoration
// idempotence.
package wrapper

import (
	"reflect"

	"github.com/google/uuid"

	"github.com/funvibe/checkmate/internal/cache"
	"github.com/funvibe/checkmate/internal/diagnostics"
	"github.com/funvibe/checkmate/internal/synth"
)

// Wrapper is the synthesized callable returned by the decorator (spec
// GLOSSARY "Wrapper"). It owns its captured scope (Plan) exclusively; the
// wrapped callable (Func) is shared, with lifetime >= the wrapper (spec §3
// "Ownership").
type Wrapper struct {
	ID   uuid.UUID
	Name string
	Doc  string
	Func reflect.Value // the __beartype_func / __checkmate_func equivalent
	Plan *synth.Plan
}

// Instantiate materializes plan into a live Wrapper around original (spec
// §4.6).
//
// Idempotence (spec §4.6, §8 property 1): if original has already been
// wrapped by this system, the existing Wrapper is returned unchanged rather
// than double-wrapping.
func Instantiate(original any, name, doc string, plan *synth.Plan) (*Wrapper, error) {
	if existing, ok := cache.AlreadyWrapped(original); ok {
		return existing.(*Wrapper), nil
	}

	fv := reflect.ValueOf(original)
	if fv.Kind() != reflect.Func {
		return nil, diagnostics.ParseError(name, "decoration target is not a function value")
	}

	w := &Wrapper{
		ID:   cache.NewWrapperID(),
		Name: name,
		Doc:  doc,
		Func: fv,
		Plan: plan,
	}
	cache.MarkWrapped(original, w)
	return w, nil
}

// Call executes the wrapper's assembled plan: parameter checks in
// declaration order, the first failing check short-circuiting (spec §4.5
// tie-break rule 4, §8 property 5); then the wrapped call; then, if
// present, the return check (spec §4.5 "Return value").
func (w *Wrapper) Call(args []any, kwargs map[string]any) (any, error) {
	for _, p := range w.Plan.Params {
		if err := p.Check(args, kwargs); err != nil {
			return nil, err
		}
	}

	result, err := w.invoke(args)
	if err != nil {
		return nil, err
	}

	if w.Plan.Return == nil {
		return result, nil
	}

	if rv := reflect.ValueOf(result); rv.IsValid() && isSuspensionReturn(rv.Type()) {
		return w.checkSuspension(rv), nil
	}

	if err := w.Plan.Return.Check(result); err != nil {
		return nil, err
	}
	return result, nil
}

// checkSuspension handles a return value shaped like a coroutine's
// suspension handle (spec §5, §9): rather than checking the channel value
// itself, it forwards received values through a new bidirectional channel
// of the same element type after checking each one, returning that
// forwarding channel so the caller still receives a suspension handle (spec:
// "return the same suspension handle to preserve the original semantics").
// A received value that fails the return check is not forwarded; the
// forwarding channel is closed at that point.
func (w *Wrapper) checkSuspension(src reflect.Value) any {
	elemType := suspensionElem(src.Type())
	forward := reflect.MakeChan(reflect.ChanOf(reflect.BothDir, elemType), 0)
	go func() {
		defer forward.Close()
		for {
			v, ok := src.Recv()
			if !ok {
				return
			}
			if w.Plan.Return.Check(v.Interface()) != nil {
				return
			}
			forward.Send(v)
		}
	}()
	return forward.Interface()
}

// invoke calls the wrapped function via reflection, adapting a flat args
// slice to reflect.Value arguments. A variadic trailing parameter receives
// the remaining positional args individually (reflect.Value.Call handles
// variadic expansion itself when CallSlice is not used, so args are passed
// one-by-one here matching the target's declared arity).
func (w *Wrapper) invoke(args []any) (any, error) {
	t := w.Func.Type()
	in := make([]reflect.Value, 0, len(args))
	for i, a := range args {
		var argType reflect.Type
		switch {
		case t.IsVariadic() && i >= t.NumIn()-1:
			argType = t.In(t.NumIn() - 1).Elem()
		case i < t.NumIn():
			argType = t.In(i)
		default:
			argType = reflect.TypeOf(a)
		}
		in = append(in, coerce(a, argType))
	}

	out := w.Func.Call(in)
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	default:
		results := make([]any, len(out))
		for i, o := range out {
			results[i] = o.Interface()
		}
		return results, nil
	}
}

func coerce(a any, target reflect.Type) reflect.Value {
	if a == nil {
		if target == nil {
			return reflect.ValueOf(a)
		}
		return reflect.Zero(target)
	}
	v := reflect.ValueOf(a)
	if target != nil && v.Type() != target && v.Type().AssignableTo(target) {
		return v.Convert(target)
	}
	return v
}

package checkmate

import (
	"fmt"
	"reflect"

	"github.com/funvibe/checkmate/internal/sig"
)

// Wrap decorates a plain Go function value fn and returns a new function
// value of the exact same reflect.Type, built with reflect.MakeFunc -- the
// closest Go primitive to spec §8 property 3 ("the wrapper accepts exactly
// the same argument shapes... as the original; this is a bijection on the
// call site").
//
// hints maps each parameter by position (argN, zero-indexed: "arg0",
// "arg1", ..., the placeholder names sig.FromFunc assigns) rather than by
// name, since Go's reflect.Type carries no parameter names; callers that
// need named-parameter ergonomics should build a sig.Signature directly and
// call Decorate. Wrap is the convenience path for ordinary Go functions
// with only positional-or-keyword-shaped parameters (Go has no keyword
// arguments at the language level).
func Wrap(fn any, name string, hints Hints, returnHint any, opts ...Option) (any, error) {
	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		return nil, fmt.Errorf("checkmate.Wrap: %q is not a function value", name)
	}

	s, err := sig.FromFunc(fn)
	if err != nil {
		return nil, err
	}

	decorated, err := Decorate(fn, name, s, hints, returnHint, opts...)
	if err != nil {
		return nil, err
	}

	stub := reflect.MakeFunc(t, func(in []reflect.Value) []reflect.Value {
		args := make([]any, len(in))
		for i, v := range in {
			args[i] = v.Interface()
		}
		result, err := decorated.Call(args, nil)
		if err != nil {
			panic(err)
		}
		return adaptResult(t, result)
	})

	return stub.Interface(), nil
}

// adaptResult converts Decorated.Call's single-or-slice result convention
// back into the []reflect.Value shape reflect.MakeFunc requires.
func adaptResult(t reflect.Type, result any) []reflect.Value {
	numOut := t.NumOut()
	if numOut == 0 {
		return nil
	}
	if numOut == 1 {
		return []reflect.Value{valueOrZero(result, t.Out(0))}
	}
	results, ok := result.([]any)
	if !ok {
		out := make([]reflect.Value, numOut)
		for i := range out {
			out[i] = reflect.Zero(t.Out(i))
		}
		return out
	}
	out := make([]reflect.Value, numOut)
	for i := 0; i < numOut; i++ {
		out[i] = valueOrZero(results[i], t.Out(i))
	}
	return out
}

func valueOrZero(v any, target reflect.Type) reflect.Value {
	if v == nil {
		return reflect.Zero(target)
	}
	rv := reflect.ValueOf(v)
	if rv.Type() != target && rv.Type().AssignableTo(target) {
		return rv.Convert(target)
	}
	return rv
}

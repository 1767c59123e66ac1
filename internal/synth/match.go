package synth

import (
	"fmt"
	"reflect"

	"github.com/funvibe/checkmate/internal/cache"
	"github.com/funvibe/checkmate/internal/hir"
)

// matchesHint decides whether v satisfies h, resolving NameRef/ForwardRef
// hints against registry lazily (spec §8 property 7: "a NameRef is resolved
// at first call of the wrapper and subsequent calls reuse the resolved
// type"). The returned error, when non-nil, always means resolution failed
// (ForwardRefError territory), never that the value simply didn't match.
func matchesHint(h hir.Hint, v any, registry *cache.TypeRegistry) (bool, error) {
	switch h.Sign {
	case hir.SignIgnorable:
		return true, nil

	case hir.SignClass:
		return isInstance(v, h.Class), nil

	case hir.SignNameRef, hir.SignForwardRef:
		t, err := registry.Resolve(h.Name)
		if err != nil {
			return false, err
		}
		return isInstance(v, t), nil

	case hir.SignTuple, hir.SignUnion:
		for _, item := range h.Items {
			ok, err := matchesHint(item, v, registry)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil

	case hir.SignGeneric:
		return isInstance(v, h.Class), nil

	case hir.SignNewType:
		if h.Alias == nil {
			return false, nil
		}
		return matchesHint(*h.Alias, v, registry)

	case hir.SignAttrValidator, hir.SignEquality, hir.SignUserPredicate:
		if h.Validator == nil {
			return false, nil
		}
		return h.Validator.IsValid(v), nil

	default:
		return false, nil
	}
}

// isInstance is the Go analogue of isinstance(value, type): exact type
// match, interface satisfaction, or plain assignability.
func isInstance(v any, t reflect.Type) bool {
	if t == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		// v is untyped nil; matches only interface/pointer/slice/map/chan/func types.
		switch t.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
			return true
		default:
			return false
		}
	}
	vt := rv.Type()
	if vt == t {
		return true
	}
	if t.Kind() == reflect.Interface {
		return vt.Implements(t)
	}
	return vt.AssignableTo(t)
}

func describe(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T(%v)", v, truncate(v))
}

// truncate bounds the size of a value's representation embedded in an
// error message, implementing spec §4.6's "value-truncating representation
// helper (for error messages that must not embed arbitrarily large repr
// strings)".
func truncate(v any) string {
	s := fmt.Sprintf("%v", v)
	const maxLen = 256
	if len(s) <= maxLen {
		return s
	}
	return fmt.Sprintf("%s...(%s total)", s[:maxLen], humanizeCount(len(s)))
}

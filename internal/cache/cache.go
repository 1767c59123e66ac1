// Package cache implements the "Caches & Identity" component of spec §2:
// memoization of sign classification per hint, plus the identity
// bookkeeping that lets decoration be idempotent (spec §8 property 1).
// No unerased-base extraction is memoized here: a Generic hint carries its
// origin type directly, and this package has no extraction step for it.
//
// Concurrency model (spec §5): "at-most-one computation per key is not
// required -- duplicate concurrent computations are tolerated because
// results are identity-equal and idempotent to install." sync.Map's
// LoadOrStore gives exactly that semantic with no extra locking, mirroring
// the sync.Once-gated registration idiom this teacher uses for builtins
// registration (internal/analyzer/builtins.go's builtinsOnce).
package cache

import (
	"reflect"
	"sync"

	"github.com/google/uuid"

	"github.com/funvibe/checkmate/internal/hir"
)

// signCache memoizes hir.Classify by the raw hint's identity. Hints that
// are not comparable (slices, funcs) skip the cache; they are classified
// fresh every time, which is correct (classification is pure) if slower.
var signCache sync.Map // map[any]hir.Hint

// Classify is hir.Classify with a memoization layer over comparable raw
// hints (spec §2 "Memoizes sign classification... per hint").
func Classify(raw any) hir.Hint {
	if !isComparable(raw) {
		return hir.Classify(raw)
	}
	if v, ok := signCache.Load(raw); ok {
		return v.(hir.Hint)
	}
	h := hir.Classify(raw)
	actual, _ := signCache.LoadOrStore(raw, h)
	return actual.(hir.Hint)
}

func isComparable(raw any) bool {
	if raw == nil {
		return true
	}
	defer func() { recover() }()
	t := reflect.TypeOf(raw)
	return t != nil && t.Comparable()
}

// ResetSignCache clears the classification cache. Exposed for tests only.
func ResetSignCache() {
	signCache.Range(func(k, _ any) bool {
		signCache.Delete(k)
		return true
	})
}

// wrappedMarker tracks which original callables (keyed by their
// reflect.Value pointer) have already been decorated, implementing the
// idempotence gate of spec §4.6/§8 property 1: "if the wrapped callable
// bears an internal mark indicating it already was wrapped by this
// system, return it unchanged."
var wrappedMarker sync.Map // map[uintptr]any (the previously returned wrapper)

// MarkWrapped records that original (identified by its code pointer) has
// been wrapped, returning the wrapper value that should be reused on any
// subsequent decoration attempt.
func MarkWrapped(original any, wrapper any) {
	ptr := funcPointer(original)
	if ptr == 0 {
		return
	}
	wrappedMarker.LoadOrStore(ptr, wrapper)
}

// AlreadyWrapped reports whether original has already been decorated,
// returning the existing wrapper if so.
func AlreadyWrapped(original any) (any, bool) {
	ptr := funcPointer(original)
	if ptr == 0 {
		return nil, false
	}
	v, ok := wrappedMarker.Load(ptr)
	return v, ok
}

func funcPointer(fn any) uintptr {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return 0
	}
	return v.Pointer()
}

// ResetWrappedMarker clears the idempotence marker cache. Tests only.
func ResetWrappedMarker() {
	wrappedMarker.Range(func(k, _ any) bool {
		wrappedMarker.Delete(k)
		return true
	})
}

// NewWrapperID mints a fresh identity token for a synthesized wrapper
// (spec §4.6 "Wrapper... references... required by the generated body"),
// stored as Wrapper.ID. Generated captured-scope identifiers in
// internal/validator take their uuid suffix from uuid.NewString directly,
// not from this function.
func NewWrapperID() uuid.UUID {
	return uuid.New()
}

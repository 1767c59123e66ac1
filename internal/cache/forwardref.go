package cache

import (
	"fmt"
	"reflect"
	"sync"
)

// TypeRegistry resolves a NameRef/ForwardRef's dotted name to a
// reflect.Type. Go has no import machinery reachable at runtime the way
// Python's __import__ is, so callers register candidate types up front
// (typically via an init() in the package defining them) instead of the
// decorator importing modules dynamically.
//
// Resolution is always keyed by the *full* dotted name, never the bare
// basename, specifically to avoid the classname-collision hazard called
// out in original_source/beartype/_decor/decor.py (lines 598-604): two
// differently-qualified types sharing a basename (e.g. "rising.Sun" and
// "sinking.Sun") must never be confused.
type TypeRegistry struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

// NewTypeRegistry builds an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{types: make(map[string]reflect.Type)}
}

// Register associates a dotted or bare name with a concrete type.
func (r *TypeRegistry) Register(name string, t reflect.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[name] = t
}

// Resolve looks up name, returning a plain error if it is unknown; the
// check closures in internal/synth wrap that error in
// diagnostics.ForwardRefError (spec §7 "ForwardRef (name resolves to
// nothing / non-type)").
func (r *TypeRegistry) Resolve(name string) (reflect.Type, error) {
	r.mu.RLock()
	t, ok := r.types[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("name %q is not registered", name)
	}
	return t, nil
}

// forwardRefs is the process-wide default registry used when callers don't
// supply their own. Resolved types are cached per name so "subsequent calls
// reuse the resolved type" (spec §8 property 7).
var forwardRefs = NewTypeRegistry()

// DefaultRegistry returns the process-wide default type registry.
func DefaultRegistry() *TypeRegistry { return forwardRefs }

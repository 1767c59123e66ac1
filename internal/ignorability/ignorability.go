// Package ignorability implements the Ignorability Analyzer (spec §4.3): a
// pure, unmemoized recursive-descent decision of whether a hint conveys no
// constraint and can therefore be elided from the synthesized check plan.
//
// Grounded on the recursive-descent style of this teacher's
// internal/typesystem unification code (substitution/occurs-check walks
// over finite, acyclic type trees).
package ignorability

import "github.com/funvibe/checkmate/internal/hir"

// IsIgnorable decides whether h is deeply ignorable (spec §4.3 rules):
//
//   - A hint whose sign is SignIgnorable is ignorable (the shallow,
//     fixed set: Any / no annotation / the universal top type).
//   - A Generic whose origin is exactly hir.GenericMarker and whose args
//     are all type variables is ignorable.
//   - A NewType is ignorable iff its aliased hint is ignorable (recursive).
//   - A Union is ignorable iff *any* child is ignorable (a union is as wide
//     as its widest arm).
//   - Otherwise, not ignorable.
//
// Not memoized; callers (internal/cache) typically memoize. Termination is
// guaranteed because hints are finite, acyclic trees (spec §4.3).
func IsIgnorable(h hir.Hint) bool {
	switch h.Sign {
	case hir.SignIgnorable:
		return true

	case hir.SignGeneric:
		if h.Class != hir.GenericMarker {
			return false
		}
		for _, arg := range h.Args {
			if !hir.IsTypeVarHint(arg) {
				return false
			}
		}
		return true

	case hir.SignNewType:
		if h.Alias == nil {
			return false
		}
		return IsIgnorable(*h.Alias)

	case hir.SignUnion:
		for _, child := range h.Items {
			if IsIgnorable(child) {
				return true
			}
		}
		return false

	default:
		return false
	}
}

package hir

import "github.com/funvibe/checkmate/internal/diagnostics"

// Validate rejects structurally malformed hints with precise errors
// referencing a human label (spec §4.2).
//
// Succeeds silently if h is a Class, a NameRef (when allowNames), or a
// Tuple each of whose items is Class or NameRef (when allowNames).
// Otherwise fails with an InvalidHintError interpolating label and a
// representation of the offending hint or sub-item.
//
// Every other sign (Union, Generic, NewType, ForwardRef, AttrValidator,
// Equality, UserPredicate, Ignorable) is valid as a top-level annotation in
// this module's expanded sign set, except that an empty Union and an
// AttrValidator with an empty name are rejected -- spec §4.2 describes validation for the
// "structural" signs (Class/NameRef/Tuple) specifically, since those are the
// ones whose shape synth.Synthesize depends on being pre-vetted (the
// Invariants of spec §3: "the structural validator has vetted the shape
// before synthesis begins; the synthesizer never re-validates shape").
func Validate(h Hint, label string, allowNames bool) error {
	switch h.Sign {
	case SignClass:
		return nil
	case SignNameRef:
		if !allowNames {
			return diagnostics.InvalidHintError(label, h.String()+" (names disallowed in this context)")
		}
		return nil
	case SignTuple:
		if len(h.Items) == 0 {
			return diagnostics.InvalidHintError(label, "tuple hint must be non-empty")
		}
		for _, item := range h.Items {
			switch item.Sign {
			case SignClass:
				continue
			case SignNameRef:
				if !allowNames {
					return diagnostics.InvalidHintError(label, "tuple item "+item.String()+" (names disallowed in this context)")
				}
			default:
				return diagnostics.InvalidHintError(label, "tuple item "+item.String()+" neither a class nor a name reference")
			}
		}
		return nil
	case SignUnion:
		if len(h.Items) == 0 {
			return diagnostics.InvalidHintError(label, "union hint must be non-empty")
		}
		return nil
	case SignAttrValidator:
		if h.AttrName == "" {
			return diagnostics.SubError(label, "IsAttr name must be non-empty")
		}
		return nil
	default:
		return nil
	}
}

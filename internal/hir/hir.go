// Package hir implements the Hint Intermediate Representation: a
// normalized, sign-tagged classification of heterogeneous annotation
// objects (spec §3, §4.1).
//
// Go has no PEP 484-style annotation objects, so a "hint" here is whatever
// value the caller of checkmate.Decorate supplied for a parameter or return
// position: a reflect.Type, a string naming a type (NameRef/ForwardRef), a
// slice of such values (Tuple/Union), a validator.Validator (Equality,
// UserPredicate, AttrValidator), or the sentinel Any value (Ignorable).
package hir

import (
	"fmt"
	"reflect"

	"github.com/funvibe/checkmate/internal/validator"
)

// Sign is the closed-set tag identifying a hint's shape for dispatch
// (spec §3 "Hint sign").
type Sign int

const (
	SignClass Sign = iota
	SignNameRef
	SignTuple
	SignUnion
	SignGeneric
	SignNewType
	SignForwardRef
	SignAttrValidator
	SignEquality
	SignUserPredicate
	SignIgnorable
)

func (s Sign) String() string {
	switch s {
	case SignClass:
		return "Class"
	case SignNameRef:
		return "NameRef"
	case SignTuple:
		return "Tuple"
	case SignUnion:
		return "Union"
	case SignGeneric:
		return "Generic"
	case SignNewType:
		return "NewType"
	case SignForwardRef:
		return "ForwardRef"
	case SignAttrValidator:
		return "AttrValidator"
	case SignEquality:
		return "Equality"
	case SignUserPredicate:
		return "UserPredicate"
	case SignIgnorable:
		return "Ignorable"
	default:
		return "Unknown"
	}
}

// Any is the sentinel hint value standing in for "no constraint" (the Go
// analogue of typing.Any / object). Annotating a parameter with Any (or
// omitting an annotation entirely) elides the check.
var Any = struct{ anyHint bool }{true}

// Hint is one classified annotation.
type Hint struct {
	Sign Sign

	Class reflect.Type // SignClass; SignGeneric's erased origin

	Name string // SignNameRef, SignForwardRef: bare or dotted name

	Items []Hint // SignTuple, SignUnion: ordered children

	Args []Hint // SignGeneric: type parameters

	Alias *Hint // SignNewType: the aliased hint

	AttrName string // SignAttrValidator
	Inner    *Hint  // SignAttrValidator: validator applied to the attribute value

	Validator validator.Validator // SignEquality, SignUserPredicate, SignAttrValidator
}

// NewType wraps an alias_of hint in an identity-closure alias (spec §3
// "NewType"), reducing, for instance-check purposes, to its underlying
// hint.
type NewType struct {
	Name    string
	AliasOf any
}

// Generic is a user-defined parametric class hint (spec §3 "Generic").
// Origin is the runtime-instance-checkable erased type; Args are the type
// parameters (themselves raw hint values, classified recursively).
type Generic struct {
	Origin reflect.Type
	Args   []any
}

// ForwardRef is a deferred name resolution captured from a string
// subscription (spec §3 "ForwardRef").
type ForwardRef struct {
	Name string
}

// genericMarker is the universal "Generic" placeholder analogous to Python's
// bare typing.Generic superclass, used by the ignorability analyzer's rule
// for "Generic(origin, args) whose origin is exactly the universal Generic
// marker and whose args are all type variables" (spec §4.3).
type genericMarker struct{}

// GenericMarker is the universal origin recognized by the ignorability
// analyzer as conveying no constraint when all its Args are TypeVars.
var GenericMarker reflect.Type = reflect.TypeOf(genericMarker{})

// TypeVar stands in for an unbound type variable (e.g. a Go type parameter
// with no further constraint), the ignorable leaf of a Generic's Args.
type TypeVar struct {
	Name string
}

// Classify maps an arbitrary annotation into the sign enum. It is total: it
// never errors, and falls through to SignIgnorable only for the small,
// enumerated widest-possible set (spec §4.1).
func Classify(raw any) Hint {
	switch v := raw.(type) {
	case nil:
		return Hint{Sign: SignIgnorable}

	case reflect.Type:
		if v == nil {
			return Hint{Sign: SignIgnorable}
		}
		if isUniversalAny(v) {
			return Hint{Sign: SignIgnorable}
		}
		return Hint{Sign: SignClass, Class: v}

	case string:
		return Hint{Sign: SignNameRef, Name: v}

	case ForwardRef:
		return Hint{Sign: SignForwardRef, Name: v.Name}

	case NewType:
		alias := Classify(v.AliasOf)
		return Hint{Sign: SignNewType, Name: v.Name, Alias: &alias}

	case TypeVar:
		return Hint{Sign: SignClass, Class: typeVarType, Name: v.Name}

	case Generic:
		items := make([]Hint, 0, len(v.Args))
		for _, a := range v.Args {
			items = append(items, Classify(a))
		}
		return Hint{Sign: SignGeneric, Class: v.Origin, Args: items}

	case []any:
		return classifyTuple(v)

	case Union:
		items := make([]Hint, 0, len(v))
		for _, c := range v {
			items = append(items, Classify(c))
		}
		return Hint{Sign: SignUnion, Items: items}

	case validator.AttrValidator:
		inner := Hint{Sign: signOfValidator(v.AttrInner()), Validator: v.AttrInner()}
		return Hint{
			Sign:      SignAttrValidator,
			AttrName:  v.AttrName(),
			Inner:     &inner,
			Validator: v,
		}

	case validator.EqualityValidator:
		return Hint{Sign: SignEquality, Validator: v}

	case validator.PredicateValidator:
		return Hint{Sign: SignUserPredicate, Validator: v}

	case validator.Validator:
		// A composite (And/Or/Not) built directly by the caller: classified
		// as a generic user predicate since its shape is opaque beyond the
		// Validator interface itself.
		return Hint{Sign: SignUserPredicate, Validator: v}

	default:
		if v == Any {
			return Hint{Sign: SignIgnorable}
		}
		// Any other concrete Go value is treated as naming its own type,
		// e.g. passing reflect.TypeOf(x) forgetfully omitted — be lenient
		// and classify by reflect.TypeOf rather than erroring, since
		// Classify must be total.
		t := reflect.TypeOf(raw)
		if t == nil {
			return Hint{Sign: SignIgnorable}
		}
		return Hint{Sign: SignClass, Class: t}
	}
}

// Union is a semantic union of child hints (spec §3 "Union"): equivalent to
// Tuple for instance-check purposes, but retains identity for sign-dispatch.
type Union []any

// signOfValidator classifies an inner validator attached to an
// AttrValidator composite for display purposes only (spec §3's Sign
// enum has no slot for "validator nested inside AttrValidator" beyond
// Equality/UserPredicate/AttrValidator themselves).
func signOfValidator(v validator.Validator) Sign {
	switch v.(type) {
	case validator.AttrValidator:
		return SignAttrValidator
	case validator.EqualityValidator:
		return SignEquality
	default:
		return SignUserPredicate
	}
}

func classifyTuple(items []any) Hint {
	out := make([]Hint, 0, len(items))
	for _, it := range items {
		out = append(out, Classify(it))
	}
	return Hint{Sign: SignTuple, Items: out}
}

var anyType = reflect.TypeOf((*any)(nil)).Elem()

// typeVarType is the sentinel reflect.Type standing in for "this is a
// TypeVar", recognized by internal/ignorability's Generic-ignorability rule.
// It is never a real runtime-checkable type; it only ever appears nested
// inside a Generic's Args.
var typeVarType = reflect.TypeOf(TypeVar{})

// IsTypeVarHint reports whether a classified hint stands for a TypeVar.
func IsTypeVarHint(h Hint) bool {
	return h.Sign == SignClass && h.Class == typeVarType
}

func isUniversalAny(t reflect.Type) bool {
	return t == anyType
}

// IsForwardRef reports whether raw structurally names a ForwardRef hint.
func IsForwardRef(raw any) bool {
	_, ok := raw.(ForwardRef)
	return ok
}

// IsTypeVariable reports whether raw is an unbound type variable.
func IsTypeVariable(raw any) bool {
	_, ok := raw.(TypeVar)
	return ok
}

// IsGeneric reports whether raw structurally names a Generic hint.
func IsGeneric(raw any) bool {
	_, ok := raw.(Generic)
	return ok
}

// IsNewType reports whether raw structurally names a NewType hint.
func IsNewType(raw any) bool {
	_, ok := raw.(NewType)
	return ok
}

// String renders a human-readable representation of a hint, used in error
// labels (spec §4.2 "a representation of the offending hint").
func (h Hint) String() string {
	switch h.Sign {
	case SignClass:
		if h.Class == nil {
			return "<nil class>"
		}
		return h.Class.String()
	case SignNameRef, SignForwardRef:
		return fmt.Sprintf("%q", h.Name)
	case SignTuple, SignUnion:
		s := "("
		for i, it := range h.Items {
			if i > 0 {
				s += ", "
			}
			s += it.String()
		}
		return s + ")"
	case SignGeneric:
		s := "Generic["
		if h.Class != nil {
			s += h.Class.String()
		}
		for _, a := range h.Args {
			s += ", " + a.String()
		}
		return s + "]"
	case SignNewType:
		inner := "?"
		if h.Alias != nil {
			inner = h.Alias.String()
		}
		return fmt.Sprintf("NewType(%s -> %s)", h.Name, inner)
	case SignAttrValidator:
		return fmt.Sprintf("IsAttr[%q, ...]", h.AttrName)
	case SignEquality:
		return "IsEqual[...]"
	case SignUserPredicate:
		return "Is[...]"
	case SignIgnorable:
		return "Any"
	default:
		return "<unknown hint>"
	}
}

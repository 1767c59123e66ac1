// Package diagnostics implements the error taxonomy of a runtime
// type-checking decorator: a closed set of error codes, grouped by the
// phase in which they can be raised (decoration vs. call), each rendering
// through a fixed message template.
package diagnostics

import "fmt"

// Phase identifies when in the decorator's lifecycle an error was raised.
type Phase string

const (
	PhaseDecoration Phase = "decoration"
	PhaseCall       Phase = "call"
)

// Code is one of the closed set of diagnostic codes from spec §7's
// taxonomy table.
type Code string

const (
	// Decoration-time codes.
	CodeInvalidHint      Code = "D001" // InvalidHint
	CodeInvalidParamName Code = "D002" // InvalidParamName (reserved prefix)
	CodeParse            Code = "D003" // Parse (assembled check plan rejected)
	CodeNewType          Code = "D004" // NewType shape
	CodeGeneric          Code = "D005" // Generic shape
	CodeSub              Code = "D006" // Sub (compositional: IsAttr malformed)

	// Call-time codes.
	CodeForwardRef Code = "C001" // ForwardRef (name resolves to nothing / non-type)
	CodeParamType  Code = "C002" // ParamType
	CodeReturnType Code = "C003" // ReturnType
)

var templates = map[Code]string{
	CodeInvalidHint:      "%s: %s",
	CodeInvalidParamName: "parameter %q reserved for use by checkmate",
	CodeParse:            "%s wrapper unassemblable:\n%s",
	CodeNewType:          "%s: invalid new-type alias: %s",
	CodeGeneric:          "%s: invalid generic hint: %s",
	CodeSub:              "%s: %s",
	CodeForwardRef:       "could not resolve forward reference %q: %s",
	CodeParamType:        "%s parameter %q: %s",
	CodeReturnType:       "%s return value: %s",
}

// Error is the concrete error type raised by every checkmate diagnostic. It
// carries enough structure for callers to type-switch (e.g. to distinguish
// a ParamTypeError from a ReturnTypeError) while sharing one rendering path.
type Error struct {
	Code  Code
	Phase Phase
	Args  []interface{}
}

func (e *Error) Error() string {
	tmpl, ok := templates[e.Code]
	if !ok {
		return fmt.Sprintf("unknown diagnostic code: %s", e.Code)
	}
	return fmt.Sprintf("[%s] "+tmpl, append([]interface{}{e.Code}, e.Args...)...)
}

func newError(phase Phase, code Code, args ...interface{}) *Error {
	return &Error{Code: code, Phase: phase, Args: args}
}

// InvalidHintError (§6, §7 "InvalidHint"). Raised by hir.Validate.
func InvalidHintError(label, detail string) error {
	return newError(PhaseDecoration, CodeInvalidHint, label, detail)
}

// InvalidParamNameError (§6 "Reserved names", §7 "InvalidParamName").
func InvalidParamNameError(name string) error {
	return newError(PhaseDecoration, CodeInvalidParamName, name)
}

// ParseError (§4.6, §7 "Parse"). funcLabel is a human-readable identifier
// for the wrapped callable; source is the rendered check-plan trace.
func ParseError(funcLabel, source string) error {
	return newError(PhaseDecoration, CodeParse, funcLabel, source)
}

// NewTypeError (§7 "NewType, Generic shape").
func NewTypeError(label, detail string) error {
	return newError(PhaseDecoration, CodeNewType, label, detail)
}

// GenericError (§7 "NewType, Generic shape").
func GenericError(label, detail string) error {
	return newError(PhaseDecoration, CodeGeneric, label, detail)
}

// SubError (§7 "Sub (compositional: IsAttr malformed)").
func SubError(label, detail string) error {
	return newError(PhaseDecoration, CodeSub, label, detail)
}

// ForwardRefError (§7 "ForwardRef"). Raised at first call, per spec.
func ForwardRefError(name string, cause error) error {
	return newError(PhaseCall, CodeForwardRef, name, cause)
}

// ParamTypeError (§6, §8 property 4: message must contain both the
// callable's name and the offending parameter's name).
func ParamTypeError(funcLabel, paramLabel, detail string) error {
	return newError(PhaseCall, CodeParamType, funcLabel, paramLabel, detail)
}

// ReturnTypeError (§6, §8 property 4).
func ReturnTypeError(funcLabel, detail string) error {
	return newError(PhaseCall, CodeReturnType, funcLabel, detail)
}

// Is reports whether err is a diagnostics.Error with the given code,
// enabling callers (and tests) to assert on error kind without string
// matching.
func Is(err error, code Code) bool {
	e, ok := err.(*Error)
	return ok && e.Code == code
}

// Package config holds process-wide settings read once at decoration time,
// mirroring how a host language's "-O" flag or similar global toggle would
// be observed by a runtime type-checking system.
package config

import "os"

// ReservedPrefix is the identifier prefix reserved for the wrapper's own
// captured scope. A decorated callable's hint map must not contain a key
// beginning with this prefix; violation is InvalidParamNameError.
const ReservedPrefix = "__checkmate_"

// OptimizedMode mirrors a host interpreter's "optimizations enabled" signal
// (spec §4.7). When true, Decorate degrades to the identity function. Read
// once at package init, not per call.
var OptimizedMode = os.Getenv("CHECKMATE_OPTIMIZED") != ""

// StrictPositionalOnly enables checking of positional-only parameters, left
// unchecked by default per the source's open TODO (spec §9, Open Question 1).
var StrictPositionalOnly = os.Getenv("CHECKMATE_STRICT_POSITIONAL_ONLY") != ""

// StrictVarKeyword enables checking of variadic keyword parameters
// (**kwargs-equivalent), left unchecked by default for the same reason.
var StrictVarKeyword = os.Getenv("CHECKMATE_STRICT_VAR_KEYWORD") != ""

// ReturnNoneIsContract is read from CHECKMATE_RETURN_NONE_IS_CONTRACT at
// package init (spec §9, Open Question 2). No other package reads it: setting
// it does not change how a return hint is checked, and this module has no
// distinct "no value" return annotation for it to act on.
var ReturnNoneIsContract = os.Getenv("CHECKMATE_RETURN_NONE_IS_CONTRACT") != ""

// IsTestMode is a plain flag tests may set; nothing in this module reads it.
// Tests change the toggles above by assigning them directly.
var IsTestMode = false

package di

import (
	"fmt"

	"github.com/xraph/go-utils/errs"
)

// =============================================================================
// ERROR CODES
// =============================================================================

const (
	// CodeInvalidBinding indicates a malformed identifier, an unknown class or a
	// violated alias invariant at registration time
	CodeInvalidBinding = "INVALID_BINDING"

	// CodeUnknownParameter indicates a parameter lookup on an unregistered key
	CodeUnknownParameter = "UNKNOWN_PARAMETER"

	// CodeDuplicateSingleton indicates an attempt to replace a rule with a
	// singleton rule without forcing
	CodeDuplicateSingleton = "DUPLICATE_SINGLETON"

	// CodeUnknownIdentifier indicates an identifier that is neither a rule nor a class
	CodeUnknownIdentifier = "UNKNOWN_IDENTIFIER"

	// CodeUnresolvableParameter indicates a required constructor parameter
	// without a nominal type
	CodeUnresolvableParameter = "UNRESOLVABLE_PARAMETER"

	// CodeNotInstantiable indicates construction of a class without a constructor
	CodeNotInstantiable = "NOT_INSTANTIABLE"

	// CodeArgumentMismatch indicates a constructor argument list that does not
	// fit the constructor signature
	CodeArgumentMismatch = "ARGUMENT_MISMATCH"

	// CodeConstructionFailed indicates a constructor returned an error
	CodeConstructionFailed = "CONSTRUCTION_FAILED"

	// CodeTypeMismatch indicates a resolved instance is not of the requested type
	CodeTypeMismatch = "TYPE_MISMATCH"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

// ErrInvalidBindingSentinel is a sentinel error for invalid bindings (for error checking).
var ErrInvalidBindingSentinel = errs.NewError(CodeInvalidBinding, "invalid binding", nil)

// ErrUnknownParameterSentinel is a sentinel error for unknown parameters.
var ErrUnknownParameterSentinel = errs.NewError(CodeUnknownParameter, "unknown parameter", nil)

// ErrDuplicateSingletonSentinel is a sentinel error for singleton overrides.
var ErrDuplicateSingletonSentinel = errs.NewError(CodeDuplicateSingleton, "duplicate singleton", nil)

// ErrUnknownIdentifierSentinel is a sentinel error for unknown identifiers.
var ErrUnknownIdentifierSentinel = errs.NewError(CodeUnknownIdentifier, "unknown identifier", nil)

// ErrUnresolvableParameterSentinel is a sentinel error for parameters autowiring cannot fill.
var ErrUnresolvableParameterSentinel = errs.NewError(CodeUnresolvableParameter, "unresolvable parameter", nil)

// ErrNotInstantiableSentinel is a sentinel error for abstract classes.
var ErrNotInstantiableSentinel = errs.NewError(CodeNotInstantiable, "class is not instantiable", nil)

// ErrArgumentMismatchSentinel is a sentinel error for bad constructor arguments.
var ErrArgumentMismatchSentinel = errs.NewError(CodeArgumentMismatch, "argument mismatch", nil)

// ErrConstructionFailedSentinel is a sentinel error for failing constructors.
var ErrConstructionFailedSentinel = errs.NewError(CodeConstructionFailed, "construction failed", nil)

// ErrTypeMismatchSentinel is a sentinel error for type mismatch during resolution.
var ErrTypeMismatchSentinel = errs.NewError(CodeTypeMismatch, "type mismatch", nil)

// =============================================================================
// ERROR CONSTRUCTORS
// =============================================================================

// ErrInvalidBinding creates an error for a rejected registration
func ErrInvalidBinding(subject, reason string) *errs.Error {
	return errs.NewError(
		CodeInvalidBinding,
		fmt.Sprintf("invalid binding '%s': %s", subject, reason),
		nil,
	).WithContext("subject", subject).(*errs.Error)
}

// ErrUnknownParameter creates an error for a missing parameter
func ErrUnknownParameter(identifier string) *errs.Error {
	return errs.NewError(
		CodeUnknownParameter,
		fmt.Sprintf("unknown parameter '%s'", identifier),
		nil,
	).WithContext("identifier", identifier).(*errs.Error)
}

// ErrDuplicateSingleton creates an error for an unforced singleton override
func ErrDuplicateSingleton(identifier string) *errs.Error {
	return errs.NewError(
		CodeDuplicateSingleton,
		fmt.Sprintf("attempt to override singleton rule '%s'", identifier),
		nil,
	).WithContext("identifier", identifier).(*errs.Error)
}

// ErrUnknownIdentifier creates an error for an identifier nothing can resolve
func ErrUnknownIdentifier(identifier string) *errs.Error {
	return errs.NewError(
		CodeUnknownIdentifier,
		fmt.Sprintf("unknown class, object or rule '%s'", identifier),
		nil,
	).WithContext("identifier", identifier).(*errs.Error)
}

// ErrUnresolvableParameter creates an error for a constructor parameter that
// has no nominal type to autowire
func ErrUnresolvableParameter(className string, index int) *errs.Error {
	return errs.NewError(
		CodeUnresolvableParameter,
		fmt.Sprintf("parameter %d of '%s' has no class type and cannot be auto-resolved", index, className),
		nil,
	).WithContext("class", className).
		WithContext("parameter", index).(*errs.Error)
}

// ErrNotInstantiable creates an error for a class declared without a constructor
func ErrNotInstantiable(className string) *errs.Error {
	return errs.NewError(
		CodeNotInstantiable,
		fmt.Sprintf("class '%s' has no constructor", className),
		nil,
	).WithContext("class", className).(*errs.Error)
}

// ErrArgumentMismatch creates an error for arguments that do not fit a constructor
func ErrArgumentMismatch(className, reason string) *errs.Error {
	return errs.NewError(
		CodeArgumentMismatch,
		fmt.Sprintf("cannot construct '%s': %s", className, reason),
		nil,
	).WithContext("class", className).(*errs.Error)
}

// NewConstructionError wraps an error returned by a class constructor
func NewConstructionError(className string, cause error) *errs.Error {
	return errs.NewError(
		CodeConstructionFailed,
		fmt.Sprintf("constructor of '%s' failed", className),
		cause,
	).WithContext("class", className).(*errs.Error)
}

// ErrTypeMismatch creates an error for type mismatch during resolution
func ErrTypeMismatch(identifier string, actual any) *errs.Error {
	return errs.NewError(
		CodeTypeMismatch,
		fmt.Sprintf("identifier '%s' type mismatch: got %T", identifier, actual),
		nil,
	).WithContext("identifier", identifier).
		WithContext("actual_type", fmt.Sprintf("%T", actual)).(*errs.Error)
}

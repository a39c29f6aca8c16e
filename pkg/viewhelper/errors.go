package viewhelper

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateArgument is returned when an argument name is registered twice.
	ErrDuplicateArgument = errors.New("viewhelper: duplicate argument")
	// ErrUnknownArgument is returned when overriding an argument that was never registered.
	ErrUnknownArgument = errors.New("viewhelper: unknown argument")
	// ErrMissingTypeInformation is returned when a render parameter has no type.
	ErrMissingTypeInformation = errors.New("viewhelper: missing type information")
	// ErrTypeMismatch is returned when a bound value does not match its declared type.
	ErrTypeMismatch = errors.New("viewhelper: type mismatch")
	// ErrIllegalContext is returned when a helper is used outside the context it needs.
	ErrIllegalContext = errors.New("viewhelper: illegal context")
	// ErrRequiredArgument is returned by tree builders when a required argument is not bound.
	ErrRequiredArgument = errors.New("viewhelper: required argument missing")
	// ErrHelperNotFound is returned when a registry has no factory for a name.
	ErrHelperNotFound = errors.New("viewhelper: helper not found")
	// ErrNotAttached is returned when a helper is used without being attached to a registry.
	ErrNotAttached = errors.New("viewhelper: helper not attached to a registry")
)

// ArgumentError reports a declaration-phase problem with one argument.
type ArgumentError struct {
	Kind     error
	Helper   string
	Argument string
}

func (e *ArgumentError) Error() string {
	switch e.Kind {
	case ErrDuplicateArgument:
		return fmt.Sprintf("viewhelper: argument %q has already been defined for %s, thus it should not be defined again", e.Argument, e.Helper)
	case ErrUnknownArgument:
		return fmt.Sprintf("viewhelper: argument %q has not been defined for %s, thus it can't be overridden", e.Argument, e.Helper)
	case ErrMissingTypeInformation:
		return fmt.Sprintf("viewhelper: could not determine type of argument %q of the render method in %s", e.Argument, e.Helper)
	case ErrRequiredArgument:
		return fmt.Sprintf("viewhelper: required argument %q for %s was not specified", e.Argument, e.Helper)
	default:
		return fmt.Sprintf("viewhelper: argument %q of %s: %v", e.Argument, e.Helper, e.Kind)
	}
}

func (e *ArgumentError) Unwrap() error { return e.Kind }

// TypeMismatchError reports a bound value that does not conform to its
// declared type.
type TypeMismatchError struct {
	Helper   string
	Argument string
	Expected TypeTag
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("the argument %q was registered with type %q, but is of type %q in view helper %q", e.Argument, e.Expected, e.Actual, e.Helper)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// Exception is a helper-level failure raised from inside Render. Exceptions
// are subject to the registry's RecoveryPolicy.
type Exception struct {
	Message string
	Code    int
	Err     error
}

// NewException formats a helper-level failure message.
func NewException(format string, args ...any) *Exception {
	return &Exception{Message: fmt.Sprintf(format, args...)}
}

func (e *Exception) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Exception) Unwrap() error { return e.Err }

// IsRecoverable reports whether a failure returned by Render may be handled by
// the recovery policy instead of aborting the render.
func IsRecoverable(err error) bool {
	if err == nil || errors.Is(err, ErrIllegalContext) {
		return false
	}
	var exception *Exception
	if errors.As(err, &exception) {
		return true
	}
	return errors.Is(err, ErrTypeMismatch)
}

// failureMessage returns the text substituted for a recovered failure.
func failureMessage(err error) string {
	var exception *Exception
	if errors.As(err, &exception) && exception.Message != "" {
		return exception.Message
	}
	return err.Error()
}

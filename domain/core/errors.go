package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Registration errors (programmer errors, fatal at setup time)
	ErrDuplicateFormula = errors.New("formula already registered")
	ErrUnknownOption    = errors.New("unrecognized formula option")
	ErrInvalidSpec      = errors.New("invalid formula spec")

	// Lookup errors
	ErrFormulaNotFound = errors.New("formula not found")

	// Data errors
	ErrLengthMismatch   = errors.New("variable length differs from timestamp axis")
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// Execution errors
	ErrExecutionFailed = errors.New("formula execution failed")
	ErrNotRunnable     = errors.New("formula missing required inputs")
)

// Error constructors with context
func NewRegistrationError(formula string, cause error) error {
	return fmt.Errorf("%w: %s", cause, formula)
}

func NewUnknownOptionError(formula, option string) error {
	return fmt.Errorf("%w: %q for formula %s", ErrUnknownOption, option, formula)
}

func NewExecutionError(formula string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrExecutionFailed, formula, cause)
}

// Error checking helpers
func IsRegistrationError(err error) bool {
	return errors.Is(err, ErrDuplicateFormula) ||
		errors.Is(err, ErrUnknownOption) ||
		errors.Is(err, ErrInvalidSpec)
}

func IsExecutionError(err error) bool {
	return errors.Is(err, ErrExecutionFailed)
}

func IsDataError(err error) bool {
	return errors.Is(err, ErrLengthMismatch) ||
		errors.Is(err, ErrInsufficientData)
}

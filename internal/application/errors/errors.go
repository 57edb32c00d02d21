// Package apperrors defines application-level error types.
package apperrors

import (
	"fmt"
)

// ValidationError indicates grammar or filter validation failed.
type ValidationError struct {
	Field   string   // Field that failed validation
	Message string   // Error message
	Details []string // Additional details
}

func (e *ValidationError) Error() string {
	switch len(e.Details) {
	case 0:
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
	case 1:
		return fmt.Sprintf("validation failed: %s: %s: %s", e.Field, e.Message, e.Details[0])
	default:
		return fmt.Sprintf("validation failed: %s: %s (%d issues)", e.Field, e.Message, len(e.Details))
	}
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, details ...string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Details: details,
	}
}

// InputError indicates a word could not be read with the grammar's symbols.
type InputError struct {
	Cause error
	Input string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %q: %v", e.Input, e.Cause)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// NewInputError creates a new input error.
func NewInputError(input string, cause error) *InputError {
	return &InputError{
		Input: input,
		Cause: cause,
	}
}

// ExecutionError indicates a batch run failed (not validation).
type ExecutionError struct {
	Cause   error
	Grammar string
	Message string
}

func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("derivation failed for grammar %s: %s: %v", e.Grammar, e.Message, e.Cause)
	}
	return fmt.Sprintf("derivation failed for grammar %s: %s", e.Grammar, e.Message)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// NewExecutionError creates a new execution error.
func NewExecutionError(grammar, message string, cause error) *ExecutionError {
	return &ExecutionError{
		Grammar: grammar,
		Message: message,
		Cause:   cause,
	}
}

// ConfigurationError indicates system config or setup issue.
type ConfigurationError struct {
	Cause   error
	Aspect  string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error (%s): %s: %v", e.Aspect, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error (%s): %s", e.Aspect, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(aspect, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Aspect:  aspect,
		Message: message,
		Cause:   cause,
	}
}

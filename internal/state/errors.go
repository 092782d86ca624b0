package state

import (
	"errors"
	"fmt"
)

// ErrGuardNotFound is returned when removing an unknown guard
var ErrGuardNotFound = errors.New("guard not found")

// ValidationError reports a rejected form field
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a validation error
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// IsValidationError reports whether err is a ValidationError for field. An
// empty field matches any field.
func IsValidationError(err error, field string) bool {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	return field == "" || ve.Field == field
}

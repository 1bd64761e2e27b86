package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("item not found")
	ErrReadOnly = errors.New("item is read-only")
)

// ValidationError reports a rejected user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

func IsValidationError(err error) bool {
	var validationErr *ValidationError

	return errors.As(err, &validationErr)
}

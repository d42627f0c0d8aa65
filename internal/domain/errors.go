package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared by the repository, the pipeline and the commands.
var (
	// ErrNotFound: no import stored yet, or a row referenced by id is missing.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists: an import with the same id is already stored.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation: bad input such as an unknown phase name or a value the
	// database cannot hold.
	ErrValidation = errors.New("validation error")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// Error lists every field error, in order:
// "validation: phase: unknown phase "x"; batch_size: must be positive".
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("validation: ")
	for i, fe := range e.Errors {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(fe.Field)
		b.WriteString(": ")
		b.WriteString(fe.Message)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

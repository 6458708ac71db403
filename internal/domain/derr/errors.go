// Package derr defines the domain error taxonomy. Handlers match these
// with errors.As/errors.Is to pick HTTP status codes; everything that is
// not one of these kinds collapses to a generic internal failure.
package derr

import (
	"errors"
	"fmt"
)

// ErrNoFieldsToUpdate is returned by UserRepository.UpdatePartial when the
// sparse update filters down to zero columns. The domain service converts it
// into a successful no-op; it must never reach a caller of the service.
var ErrNoFieldsToUpdate = errors.New("no fields to update")

// ValidationError indicates caller input violating a domain rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on field %q: %s", e.Field, e.Message)
	}
	return "validation failed: " + e.Message
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// DuplicateError indicates a uniqueness violation (email already taken).
type DuplicateError struct {
	Message string
}

func (e *DuplicateError) Error() string { return e.Message }

// NewDuplicateError builds a DuplicateError.
func NewDuplicateError(message string) *DuplicateError {
	return &DuplicateError{Message: message}
}

// NotFoundError indicates that a referenced entity does not exist.
type NotFoundError struct {
	EntityType string
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with identifier %s not found", e.EntityType, e.Identifier)
}

// NewNotFoundError builds a NotFoundError.
func NewNotFoundError(entityType, identifier string) *NotFoundError {
	return &NotFoundError{EntityType: entityType, Identifier: identifier}
}

// BusinessRuleError indicates a domain rule violation that is not a simple
// field validation problem.
type BusinessRuleError struct {
	Message string
}

func (e *BusinessRuleError) Error() string { return e.Message }

// RepositoryError wraps any storage failure that is not one of the
// distinguished conditions above. The underlying error is kept for logging
// but its text is never shown to API callers.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository error during %s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error { return e.Err }

// NewRepositoryError wraps err as an opaque storage failure.
func NewRepositoryError(op string, err error) *RepositoryError {
	return &RepositoryError{Op: op, Err: err}
}

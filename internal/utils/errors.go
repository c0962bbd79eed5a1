package utils

import "fmt"

// ValidationError represents an error occurring during data validation.
type ValidationError struct {
	Message string
}

// Error returns the error message string.
func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new ValidationError with a specific message.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// NewValidationErrorf creates a new ValidationError with a formatted message.
func NewValidationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError represents a lookup that matched nothing.
type NotFoundError struct {
	Resource string
	ID       string
}

// Error returns the error message string.
func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// NewNotFoundError creates a NotFoundError for a resource and identifier.
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// QuotaExceededError signals that a user has used up their search allowance.
type QuotaExceededError struct {
	Limit int
}

// Error returns the error message string.
func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("search quota of %d exhausted", e.Limit)
}

// NewQuotaExceededError creates a QuotaExceededError for the given limit.
func NewQuotaExceededError(limit int) error {
	return &QuotaExceededError{Limit: limit}
}

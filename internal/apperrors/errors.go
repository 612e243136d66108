package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error for transport mapping.
type Kind int

const (
	// KindValidation marks client-correctable input errors.
	KindValidation Kind = iota
	// KindNotFound marks missing resources and permission mismatches alike.
	// The service deliberately answers "not found" where others would answer
	// "forbidden", so a probing caller cannot distinguish the two.
	KindNotFound
	// KindConflict marks lost optimistic-concurrency races.
	KindConflict
	// KindInternal marks server-side failures, including unknown state tokens.
	KindInternal
)

// AppError is the error type shared by all application services.
type AppError struct {
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error.
func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

// NewNotFoundError creates a not-found error for a resource and identifier.
func NewNotFoundError(resource, id string) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf("%s not found: %s", resource, id)}
}

// NewPermissionError creates a not-found error with a permission message.
func NewPermissionError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

// NewConflictError creates a conflict error.
func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

// NewInternalError creates an internal error.
func NewInternalError(message string) *AppError {
	return &AppError{Kind: KindInternal, Message: message}
}

// KindOf returns the kind of err if it is (or wraps) an AppError.
// Any other error is reported as KindInternal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsNotFound reports whether err is (or wraps) a not-found application error.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == KindNotFound
}

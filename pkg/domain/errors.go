package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a domain error for transport mapping.
type ErrorCode string

const (
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeConflict     ErrorCode = "CONFLICT"
	CodeInvalidState ErrorCode = "INVALID_STATE"
)

// Error is a domain error carrying a code and a caller-facing message.
type Error struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// NewValidationError creates an error for a malformed or logically invalid request.
func NewValidationError(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// NewNotFoundError creates an error for a missing resource.
func NewNotFoundError(resource, id string) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s not found with ID: %s", resource, id)}
}

// NewConflictError creates an error for a request that collides with existing state.
func NewConflictError(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

// NewInvalidStateError creates an error for a disallowed lifecycle transition.
func NewInvalidStateError(from, to string) *Error {
	return &Error{Code: CodeInvalidState, Message: fmt.Sprintf("invalid state transition from %s to %s", from, to)}
}

// CodeOf extracts the error code from err, or "" if it is not a domain error.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsNotFound reports whether err is a not-found domain error.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}

// IsConflict reports whether err is a conflict domain error.
func IsConflict(err error) bool {
	return CodeOf(err) == CodeConflict
}

// IsValidation reports whether err is a validation domain error.
func IsValidation(err error) bool {
	return CodeOf(err) == CodeValidation
}

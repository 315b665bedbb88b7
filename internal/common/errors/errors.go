// Package errors provides standardized error handling for the activities API.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Registry / signup errors surfaced to API clients.
const (
	ErrCodeActivityNotFound ErrorCode = "ACTIVITY_NOT_FOUND"
	ErrCodeDuplicateSignup  ErrorCode = "DUPLICATE_SIGNUP"
	ErrCodeNotRegistered    ErrorCode = "NOT_REGISTERED"
	ErrCodeInvalidEmail     ErrorCode = "INVALID_EMAIL"

	ErrCodeCatalogInvalid ErrorCode = "CATALOG_INVALID"
	ErrCodeInternal       ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewActivityNotFoundError reports a lookup against an unknown activity name.
func NewActivityNotFoundError(activityName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeActivityNotFound,
		Message:   "Activity not found",
		Details:   fmt.Sprintf("activity: %s", activityName),
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateSignupError reports an enrollment for an already-registered email.
func NewDuplicateSignupError(activityName, email string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateSignup,
		Message:   "Student already signed up for this activity",
		Details:   fmt.Sprintf("activity: %s, email: %s", activityName, email),
		Timestamp: time.Now().UTC(),
	}
}

// NewNotRegisteredError reports a withdrawal for an email that never enrolled.
func NewNotRegisteredError(activityName, email string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotRegistered,
		Message:   "Student is not registered for this activity",
		Details:   fmt.Sprintf("activity: %s, email: %s", activityName, email),
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidEmailError reports a malformed or missing email parameter.
func NewInvalidEmailError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidEmail,
		Message:   "Invalid email address",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogInvalidError reports a seed catalog that failed schema validation.
func NewCatalogInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogInvalid,
		Message:   "Activity catalog failed validation",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal server error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Status Mapping
// ==========================

// HTTPStatusMapping maps internal error codes to HTTP status codes. Every
// registry failure is a client error; only catalog and unexpected failures
// are server-side.
var HTTPStatusMapping = map[ErrorCode]int{
	ErrCodeActivityNotFound: http.StatusNotFound,
	ErrCodeDuplicateSignup:  http.StatusBadRequest,
	ErrCodeNotRegistered:    http.StatusNotFound,
	ErrCodeInvalidEmail:     http.StatusBadRequest,
	ErrCodeCatalogInvalid:   http.StatusInternalServerError,
	ErrCodeInternal:         http.StatusInternalServerError,
}

// HTTPStatus returns the HTTP status for an error code.
func HTTPStatus(code ErrorCode) int {
	if status, exists := HTTPStatusMapping[code]; exists {
		return status
	}
	return http.StatusInternalServerError
}

// IsClientError checks whether an error code maps to a 4xx status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatus(code)
	return status >= 400 && status < 500
}

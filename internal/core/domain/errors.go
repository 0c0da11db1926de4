// Package domain defines the core domain models for easycar.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "EC-AUTH-4010")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Storage errors (STORE).
var (
	// ErrStorage indicates the persistent token store failed to read, write or remove.
	ErrStorage = NewDomainError("EC-STORE-5000", "token store failure")
)

// Authentication errors (AUTH).
var (
	// ErrAuth indicates the credential exchange failed. Invalid credentials,
	// transport failures and malformed responses all map here.
	ErrAuth = NewDomainError("EC-AUTH-4010", "authentication failed")

	// ErrUnauthorized indicates the backend rejected the session token.
	ErrUnauthorized = NewDomainError("EC-AUTH-4011", "session token rejected")

	// ErrAuthThrottled indicates too many login attempts in a short window.
	ErrAuthThrottled = NewDomainError("EC-AUTH-4290", "too many login attempts, try again later")
)

// Validation errors (VALID).
var (
	// ErrValidation indicates user input failed validation.
	ErrValidation = NewDomainError("EC-VALID-4000", "invalid input")
)

// Vehicle errors (VEH).
var (
	// ErrVehicleNotFound indicates the vehicle does not exist for the user.
	ErrVehicleNotFound = NewDomainError("EC-VEH-4040", "vehicle not found")
)

// System errors (SYS).
var (
	// ErrBackend indicates an unexpected backend response.
	ErrBackend = NewDomainError("EC-SYS-5000", "backend error")
)

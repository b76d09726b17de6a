package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies provisioning failures.
type ErrorType string

const (
	// ErrorTypeValidation marks invalid configuration or input.
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeNotFound marks a missing resource (file, user, service).
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeSystem marks a failed system command or filesystem operation.
	ErrorTypeSystem ErrorType = "SYSTEM"

	// ErrorTypeNetwork marks network-related failures (probe, clone, fetch).
	ErrorTypeNetwork ErrorType = "NETWORK"

	// ErrorTypeTimeout marks a command that exceeded its deadline.
	ErrorTypeTimeout ErrorType = "TIMEOUT"

	// ErrorTypePrivilege marks insufficient privileges to provision.
	ErrorTypePrivilege ErrorType = "PRIVILEGE"
)

// DomainError is the error value returned by provisioning components.
type DomainError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches two DomainErrors by type, so callers can compare against a
// bare typed error.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *DomainError {
	return &DomainError{Type: ErrorTypeValidation, Message: message, Cause: cause}
}

// NewNotFoundError creates a missing-resource error.
func NewNotFoundError(message string) *DomainError {
	return &DomainError{Type: ErrorTypeNotFound, Message: message}
}

// NewSystemError creates a system-level error.
func NewSystemError(message string, cause error) *DomainError {
	return &DomainError{Type: ErrorTypeSystem, Message: message, Cause: cause}
}

// NewNetworkError creates a network-related error.
func NewNetworkError(message string, cause error) *DomainError {
	return &DomainError{Type: ErrorTypeNetwork, Message: message, Cause: cause}
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(message string) *DomainError {
	return &DomainError{Type: ErrorTypeTimeout, Message: message}
}

// NewPrivilegeError creates an insufficient-privileges error.
func NewPrivilegeError(message string) *DomainError {
	return &DomainError{Type: ErrorTypePrivilege, Message: message}
}

// TypeOf returns the DomainError type of err, or ErrorTypeSystem when err
// is not a DomainError. Used for error metric labels.
func TypeOf(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ErrorTypeSystem
}

// IsNotFoundError reports whether err is a missing-resource error.
func IsNotFoundError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypeNotFound
	}
	return false
}

// IsTimeoutError reports whether err is a timeout error.
func IsTimeoutError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypeTimeout
	}
	return false
}

// IsPrivilegeError reports whether err is a privilege error.
func IsPrivilegeError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypePrivilege
	}
	return false
}

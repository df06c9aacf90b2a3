package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeUpstream      = "UPSTREAM_ERROR"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrEmptyQuery   = NewDomainError(ErrCodeValidation, "please enter a game name")
	ErrInvalidAppID = NewDomainError(ErrCodeValidation, "invalid app id")
)

// Not found errors
var (
	ErrDetailsNotFound = NewDomainError(ErrCodeNotFound, "could not fetch details for that app")
)

// Upstream errors. Remote failures are never retried; they surface to
// the caller as a user-visible message.
var (
	ErrCatalogUnavailable = NewDomainError(ErrCodeUpstream, "catalog listing unavailable")
	ErrStoreUnavailable   = NewDomainError(ErrCodeUpstream, "storefront unavailable")
)

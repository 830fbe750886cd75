// Package errors provides domain-specific error types.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for domain errors.
const (
	ErrCodeNoActiveSession    = "NO_ACTIVE_SESSION"
	ErrCodeNoCustomerSelected = "NO_CUSTOMER_SELECTED"
	ErrCodeRequestFailed      = "REQUEST_FAILED"
	ErrCodeRequestTimedOut    = "REQUEST_TIMED_OUT"
	ErrCodeResponsePollFailed = "RESPONSE_POLL_FAILED"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// DomainError represents a domain-specific error.
type DomainError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewNoActiveSessionError creates the precondition error raised when an
// action requires an active customer session and none exists.
func NewNoActiveSessionError() *DomainError {
	return &DomainError{
		Code:       ErrCodeNoActiveSession,
		Message:    "No active session",
		HTTPStatus: http.StatusConflict,
	}
}

// NewNoCustomerSelectedError creates the precondition error raised when an
// action requires a current customer and none is selected.
func NewNoCustomerSelectedError() *DomainError {
	return &DomainError{
		Code:       ErrCodeNoCustomerSelected,
		Message:    "No customer selected",
		HTTPStatus: http.StatusConflict,
	}
}

// NewRequestFailedError wraps an upstream failure with the fixed user-facing
// message of the action that triggered it.
func NewRequestFailedError(message, details string, err error) *DomainError {
	return &DomainError{
		Code:       ErrCodeRequestFailed,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// NewRequestTimedOutError creates the error raised when a poll loop exhausts
// its attempt budget while the request is still pending.
func NewRequestTimedOutError() *DomainError {
	return &DomainError{
		Code:       ErrCodeRequestTimedOut,
		Message:    "Request timed out",
		Details:    "The system is taking longer than expected to process your request.",
		HTTPStatus: http.StatusGatewayTimeout,
	}
}

// NewResponsePollFailedError creates the error raised when a poll loop
// exhausts its attempt budget while the status fetch keeps erroring.
func NewResponsePollFailedError(details string, err error) *DomainError {
	return &DomainError{
		Code:       ErrCodeResponsePollFailed,
		Message:    "Failed to get response",
		Details:    details,
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// NewUnauthorizedError creates a new unauthorized error.
func NewUnauthorizedError(message string) *DomainError {
	return &DomainError{
		Code:       ErrCodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbiddenError creates a new forbidden error.
func NewForbiddenError(message string) *DomainError {
	return &DomainError{
		Code:       ErrCodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(resource, identifier string) *DomainError {
	return &DomainError{
		Code:       ErrCodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		Details:    identifier,
		HTTPStatus: http.StatusNotFound,
	}
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, details string) *DomainError {
	return &DomainError{
		Code:       ErrCodeValidation,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, err error) *DomainError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &DomainError{
		Code:       ErrCodeInternal,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// IsDomainError checks if the error is a domain error.
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error.
func GetDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// HasCode checks whether the error is a domain error with the given code.
func HasCode(err error, code string) bool {
	domainErr, ok := GetDomainError(err)
	return ok && domainErr.Code == code
}

// IsNoActiveSession checks if the error is a missing-session precondition failure.
func IsNoActiveSession(err error) bool {
	return HasCode(err, ErrCodeNoActiveSession)
}

// IsNoCustomerSelected checks if the error is a missing-customer precondition failure.
func IsNoCustomerSelected(err error) bool {
	return HasCode(err, ErrCodeNoCustomerSelected)
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return HasCode(err, ErrCodeUnauthorized)
}

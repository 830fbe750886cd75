package backend

import (
	"errors"
	"fmt"
)

// TokenGrant is the payload returned by the credential grant endpoint.
type TokenGrant struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ServiceRequestSubmission is the body posted to a domain request endpoint.
type ServiceRequestSubmission struct {
	CustomerID  string         `json:"customer_id"`
	RequestType string         `json:"request_type"`
	Details     map[string]any `json:"details"`
}

// SubmissionAck is the backend's acknowledgement of an accepted submission.
type SubmissionAck struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
}

// APIError is returned for non-2xx backend responses. Detail carries the
// backend's error body ("detail" field) when present.
type APIError struct {
	StatusCode int
	Detail     string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// ErrorDetail extracts the user-facing detail from a backend error: the
// upstream "detail" body when available, the transport message otherwise.
func ErrorDetail(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return err.Error()
}

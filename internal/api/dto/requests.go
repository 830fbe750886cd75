// Package dto provides Data Transfer Objects for facade requests and responses.
package dto

// LoginRequest represents the request body for agent login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateSessionRequest represents the request body for opening a session.
type CreateSessionRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
}

// SubmitServiceRequest represents the request body for submitting a billing
// or international service request.
type SubmitServiceRequest struct {
	RequestType string         `json:"request_type" binding:"required"`
	Details     map[string]any `json:"details"`
}

// SetLanguageRequest represents the request body for changing the console
// language preference.
type SetLanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

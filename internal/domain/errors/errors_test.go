package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/agentdesk/console-service/internal/domain/errors"
)

func TestDomainError_Error(t *testing.T) {
	withDetails := domainerrors.NewRequestFailedError("Failed to create session", "Customer not found", nil)
	assert.Equal(t, "REQUEST_FAILED: Failed to create session (Customer not found)", withDetails.Error())

	withoutDetails := domainerrors.NewNoActiveSessionError()
	assert.Equal(t, "NO_ACTIVE_SESSION: No active session", withoutDetails.Error())
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := domainerrors.NewRequestFailedError("Failed to submit billing request", "", cause)

	assert.ErrorIs(t, err, cause)
}

func TestNewNoActiveSessionError(t *testing.T) {
	err := domainerrors.NewNoActiveSessionError()

	assert.Equal(t, "No active session", err.Message)
	assert.Equal(t, http.StatusConflict, err.HTTPStatus)
	assert.True(t, domainerrors.IsNoActiveSession(err))
}

func TestNewNoCustomerSelectedError(t *testing.T) {
	err := domainerrors.NewNoCustomerSelectedError()

	assert.Equal(t, "No customer selected", err.Message)
	assert.Equal(t, http.StatusConflict, err.HTTPStatus)
	assert.True(t, domainerrors.IsNoCustomerSelected(err))
}

func TestNewRequestTimedOutError(t *testing.T) {
	err := domainerrors.NewRequestTimedOutError()

	assert.Equal(t, "Request timed out", err.Message)
	assert.Equal(t, "The system is taking longer than expected to process your request.", err.Details)
	assert.Equal(t, http.StatusGatewayTimeout, err.HTTPStatus)
}

func TestNewResponsePollFailedError(t *testing.T) {
	err := domainerrors.NewResponsePollFailedError("upstream down", stderrors.New("boom"))

	assert.Equal(t, "Failed to get response", err.Message)
	assert.Equal(t, http.StatusBadGateway, err.HTTPStatus)
}

func TestGetDomainError_Wrapped(t *testing.T) {
	inner := domainerrors.NewUnauthorizedError("Not authenticated")
	wrapped := fmt.Errorf("handling request: %w", inner)

	domainErr, ok := domainerrors.GetDomainError(wrapped)
	require.True(t, ok)
	assert.Equal(t, domainerrors.ErrCodeUnauthorized, domainErr.Code)
	assert.True(t, domainerrors.IsUnauthorized(wrapped))
}

func TestGetDomainError_PlainError(t *testing.T) {
	_, ok := domainerrors.GetDomainError(stderrors.New("plain"))
	assert.False(t, ok)
	assert.False(t, domainerrors.IsDomainError(stderrors.New("plain")))
}

func TestHasCode(t *testing.T) {
	err := domainerrors.NewValidationError("customer_id is required", "")

	assert.True(t, domainerrors.HasCode(err, domainerrors.ErrCodeValidation))
	assert.False(t, domainerrors.HasCode(err, domainerrors.ErrCodeNotFound))
	assert.False(t, domainerrors.HasCode(nil, domainerrors.ErrCodeValidation))
}

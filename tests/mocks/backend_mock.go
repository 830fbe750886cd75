// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/agentdesk/console-service/internal/domain/models"
	"github.com/agentdesk/console-service/internal/services/backend"
)

// MockBackend is a mock implementation of backend.Client.
type MockBackend struct {
	mock.Mock
}

// Login exchanges credentials for an access token.
func (m *MockBackend) Login(ctx context.Context, username, password string) (*backend.TokenGrant, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.TokenGrant), args.Error(1)
}

// GetCurrentUser fetches the authenticated user's profile.
func (m *MockBackend) GetCurrentUser(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// CreateSession creates a new session for the customer.
func (m *MockBackend) CreateSession(ctx context.Context, customerID string) (*models.Session, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

// GetSession fetches an existing session by id.
func (m *MockBackend) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

// EndSession marks a session as ended on the backend.
func (m *MockBackend) EndSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// GetCustomer fetches a customer profile by id.
func (m *MockBackend) GetCustomer(ctx context.Context, customerID string) (*models.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

// SubmitServiceRequest posts a domain request scoped by session id.
func (m *MockBackend) SubmitServiceRequest(ctx context.Context, path, sessionID string, sub *backend.ServiceRequestSubmission) (*backend.SubmissionAck, error) {
	args := m.Called(ctx, path, sessionID, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.SubmissionAck), args.Error(1)
}

// GetServiceResponse polls the status/result of a submitted request.
func (m *MockBackend) GetServiceResponse(ctx context.Context, requestID string) (*models.ServiceResponse, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceResponse), args.Error(1)
}

// GetSnapshot fetches a snapshot endpoint as raw JSON.
func (m *MockBackend) GetSnapshot(ctx context.Context, path string) (json.RawMessage, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

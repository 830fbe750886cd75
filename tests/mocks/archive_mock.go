package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/agentdesk/console-service/internal/core/archive"
	"github.com/agentdesk/console-service/internal/domain/models"
)

// MockArchive is a mock implementation of archive.Archive.
type MockArchive struct {
	mock.Mock
}

// SaveResolvedRequest records a resolved request/response pair.
func (m *MockArchive) SaveResolvedRequest(ctx context.Context, rec *archive.ResolvedRequest) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// SaveEndedSession records an ended session.
func (m *MockArchive) SaveEndedSession(ctx context.Context, session *models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

// Ping checks if the archive connection is alive.
func (m *MockArchive) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close closes the archive connection.
func (m *MockArchive) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

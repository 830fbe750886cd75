package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/agentdesk/console-service/internal/core/kv"
	domainerrors "github.com/agentdesk/console-service/internal/domain/errors"
	"github.com/agentdesk/console-service/internal/domain/models"
	"github.com/agentdesk/console-service/internal/services/auth"
	"github.com/agentdesk/console-service/internal/services/backend"
	"github.com/agentdesk/console-service/internal/services/status"
	"github.com/agentdesk/console-service/tests/mocks"
)

type fixture struct {
	backend *mocks.MockBackend
	store   *mocks.MemStore
	status  *status.Service
	svc     *auth.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mockBackend := &mocks.MockBackend{}
	store := mocks.NewMemStore()

	statusSvc, err := status.NewService(&status.Config{Store: store})
	require.NoError(t, err)

	svc, err := auth.NewService(&auth.Config{
		Backend: mockBackend,
		Store:   store,
		Status:  statusSvc,
	})
	require.NoError(t, err)

	return &fixture{backend: mockBackend, store: store, status: statusSvc, svc: svc}
}

func TestNewService_NilConfig(t *testing.T) {
	// Act
	svc, err := auth.NewService(nil)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "config is required")
}

func TestNewService_NilBackend(t *testing.T) {
	// Arrange
	store := mocks.NewMemStore()
	statusSvc, err := status.NewService(&status.Config{Store: store})
	require.NoError(t, err)

	// Act
	svc, err := auth.NewService(&auth.Config{Store: store, Status: statusSvc})

	// Assert
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "backend client is required")
}

func TestLogin_Success(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := context.Background()

	user := &models.User{Username: "agent1", FullName: "Agent One", Role: "agent"}
	f.backend.On("Login", mock.Anything, "agent1", "secret").
		Return(&backend.TokenGrant{AccessToken: "tok-123", TokenType: "bearer"}, nil)
	f.backend.On("GetCurrentUser", mock.Anything, "tok-123").Return(user, nil)

	// Act
	grant, err := f.svc.Login(ctx, "agent1", "secret")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "tok-123", grant.AccessToken)
	assert.True(t, f.svc.IsAuthenticated())
	assert.Equal(t, "tok-123", f.svc.Token())
	assert.Equal(t, "agent1", f.svc.CurrentUser().Username)
	assert.Nil(t, f.status.Error())
	assert.False(t, f.status.IsLoading())

	// Token and user are persisted together
	tok, err := f.store.Get(ctx, kv.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", string(tok))

	data, err := f.store.Get(ctx, kv.KeyUser)
	require.NoError(t, err)
	var persisted models.User
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Equal(t, "agent1", persisted.Username)

	f.backend.AssertExpectations(t)
}

func TestLogin_BadCredentials(t *testing.T) {
	// Arrange
	f := newFixture(t)
	apiErr := &backend.APIError{StatusCode: 401, Detail: "Incorrect username or password"}
	f.backend.On("Login", mock.Anything, "agent1", "wrong").Return(nil, apiErr)

	// Act
	grant, err := f.svc.Login(context.Background(), "agent1", "wrong")

	// Assert
	assert.Nil(t, grant)
	require.Error(t, err)
	assert.True(t, domainerrors.HasCode(err, domainerrors.ErrCodeRequestFailed))

	// Auth state untouched, global error recorded
	assert.False(t, f.svc.IsAuthenticated())
	assert.False(t, f.store.Has(kv.KeyToken))

	rec := f.status.Error()
	require.NotNil(t, rec)
	assert.Equal(t, "Login failed", rec.Message)
	assert.Equal(t, "Incorrect username or password", rec.Details)
	assert.False(t, f.status.IsLoading())
}

func TestLogin_ProfileFetchFails(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.backend.On("Login", mock.Anything, "agent1", "secret").
		Return(&backend.TokenGrant{AccessToken: "tok-123"}, nil)
	f.backend.On("GetCurrentUser", mock.Anything, "tok-123").
		Return(nil, errors.New("connection refused"))

	// Act
	_, err := f.svc.Login(context.Background(), "agent1", "secret")

	// Assert
	require.Error(t, err)
	assert.False(t, f.svc.IsAuthenticated())
	assert.False(t, f.store.Has(kv.KeyToken))
	assert.False(t, f.store.Has(kv.KeyUser))

	rec := f.status.Error()
	require.NotNil(t, rec)
	assert.Equal(t, "Login failed", rec.Message)
}

func TestLogout_ClearsStateAndStore(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := context.Background()
	loginFixture(t, f)

	// Act
	f.svc.Logout(ctx)

	// Assert
	assert.False(t, f.svc.IsAuthenticated())
	assert.Empty(t, f.svc.Token())
	assert.Nil(t, f.svc.CurrentUser())
	assert.False(t, f.store.Has(kv.KeyToken))
	assert.False(t, f.store.Has(kv.KeyUser))
}

func TestCheckAuth_TrustsHeldToken(t *testing.T) {
	// Arrange
	f := newFixture(t)
	loginFixture(t, f)

	// Act
	ok := f.svc.CheckAuth(context.Background())

	// Assert: no backend validation call is made
	assert.True(t, ok)
	f.backend.AssertNotCalled(t, "GetCurrentUser", mock.Anything, mock.Anything)
}

func TestCheckAuth_NoToken(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	ok := f.svc.CheckAuth(context.Background())

	// Assert
	assert.False(t, ok)
	assert.False(t, f.svc.IsAuthenticated())
}

func TestRestore_LoadsPersistedState(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Set(ctx, kv.KeyToken, []byte("tok-restored")))
	data, err := json.Marshal(&models.User{Username: "agent2", Role: "supervisor"})
	require.NoError(t, err)
	require.NoError(t, f.store.Set(ctx, kv.KeyUser, data))

	// Act
	err = f.svc.Restore(ctx)

	// Assert
	require.NoError(t, err)
	assert.True(t, f.svc.IsAuthenticated())
	assert.Equal(t, "tok-restored", f.svc.Token())
	assert.Equal(t, "agent2", f.svc.CurrentUser().Username)
	assert.Equal(t, "supervisor", f.svc.Role())
}

func TestRestore_NothingPersisted(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	err := f.svc.Restore(context.Background())

	// Assert
	require.NoError(t, err)
	assert.False(t, f.svc.IsAuthenticated())
}

func TestRestore_CorruptUserEntry(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Set(ctx, kv.KeyToken, []byte("tok-restored")))
	require.NoError(t, f.store.Set(ctx, kv.KeyUser, []byte("{not json")))

	// Act
	err := f.svc.Restore(ctx)

	// Assert: both entries dropped rather than restoring half the state
	require.NoError(t, err)
	assert.False(t, f.svc.IsAuthenticated())
	assert.False(t, f.store.Has(kv.KeyToken))
	assert.False(t, f.store.Has(kv.KeyUser))
}

func TestRole_DefaultsToAgent(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Assert
	assert.Equal(t, models.DefaultRole, f.svc.Role())
}

func loginFixture(t *testing.T, f *fixture) {
	t.Helper()
	f.backend.On("Login", mock.Anything, "agent1", "secret").
		Return(&backend.TokenGrant{AccessToken: "tok-123"}, nil)
	f.backend.On("GetCurrentUser", mock.Anything, "tok-123").
		Return(&models.User{Username: "agent1"}, nil)
	_, err := f.svc.Login(context.Background(), "agent1", "secret")
	require.NoError(t, err)
}

// Package auth manages the agent's authentication state.
//
// Token presence is the sole authentication predicate: CheckAuth never
// validates the token against the backend. Staleness is handled lazily, the
// first 401 from any backend call triggers an implicit logout.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/agentdesk/console-service/internal/core/kv"
	domainerrors "github.com/agentdesk/console-service/internal/domain/errors"
	"github.com/agentdesk/console-service/internal/domain/models"
	"github.com/agentdesk/console-service/internal/services/backend"
	"github.com/agentdesk/console-service/internal/services/status"
)

const errLoginFailed = "Login failed"

// Service holds the token and current user and derives authentication state.
type Service struct {
	mu      sync.Mutex
	backend backend.Client
	store   kv.Store
	status  *status.Service
	token   string
	user    *models.User
}

// Config holds the configuration for the auth service.
type Config struct {
	Backend backend.Client
	Store   kv.Store
	Status  *status.Service
}

// NewService creates a new auth service.
func NewService(cfg *Config) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Backend == nil {
		return nil, fmt.Errorf("backend client is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Status == nil {
		return nil, fmt.Errorf("status service is required")
	}

	return &Service{
		backend: cfg.Backend,
		store:   cfg.Store,
		status:  cfg.Status,
	}, nil
}

// Login exchanges credentials for a token, fetches the user profile with it,
// and commits both together. On failure the auth state is left unchanged, the
// global error record is set to "Login failed" with the upstream detail, and
// the failure is returned to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*backend.TokenGrant, error) {
	s.status.Begin()
	defer s.status.End()

	grant, err := s.backend.Login(ctx, username, password)
	if err != nil {
		return nil, s.loginFailed(err)
	}

	user, err := s.backend.GetCurrentUser(ctx, grant.AccessToken)
	if err != nil {
		return nil, s.loginFailed(err)
	}

	if err := s.persist(ctx, grant.AccessToken, user); err != nil {
		return nil, s.loginFailed(err)
	}

	s.mu.Lock()
	s.token = grant.AccessToken
	s.user = user
	s.mu.Unlock()

	return grant, nil
}

// loginFailed records the failure globally and wraps it for the caller.
func (s *Service) loginFailed(err error) error {
	detail := backend.ErrorDetail(err)
	s.status.SetError(errLoginFailed, detail)
	return domainerrors.NewRequestFailedError(errLoginFailed, detail, err)
}

// persist writes token and user together; a failed user write rolls the
// token entry back so the store never holds one without the other.
func (s *Service) persist(ctx context.Context, token string, user *models.User) error {
	if err := s.store.Set(ctx, kv.KeyToken, []byte(token)); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}

	data, err := json.Marshal(user)
	if err != nil {
		_, _ = s.store.Delete(ctx, kv.KeyToken)
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	if err := s.store.Set(ctx, kv.KeyUser, data); err != nil {
		_, _ = s.store.Delete(ctx, kv.KeyToken)
		return fmt.Errorf("failed to persist user: %w", err)
	}
	return nil
}

// Logout clears the in-memory auth state and removes the persisted entries.
// Local only, no backend call.
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	_, _ = s.store.Delete(ctx, kv.KeyToken)
	_, _ = s.store.Delete(ctx, kv.KeyUser)
}

// CheckAuth reports whether a token is held, clearing auth state when none
// is. The token is not validated against the backend (trust-until-401).
func (s *Service) CheckAuth(ctx context.Context) bool {
	if s.Token() == "" {
		s.Logout(ctx)
		return false
	}
	return true
}

// Restore loads the persisted token and user into memory. Called once at
// startup; missing entries leave the service unauthenticated.
func (s *Service) Restore(ctx context.Context) error {
	token, err := s.store.Get(ctx, kv.KeyToken)
	if err != nil {
		return fmt.Errorf("failed to load token: %w", err)
	}
	if len(token) == 0 {
		return nil
	}

	data, err := s.store.Get(ctx, kv.KeyUser)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	var user *models.User
	if len(data) > 0 {
		user = &models.User{}
		if err := json.Unmarshal(data, user); err != nil {
			// Corrupted profile entry; drop both rather than restoring half.
			_, _ = s.store.Delete(ctx, kv.KeyToken)
			_, _ = s.store.Delete(ctx, kv.KeyUser)
			return nil
		}
	}

	s.mu.Lock()
	s.token = string(token)
	s.user = user
	s.mu.Unlock()
	return nil
}

// IsAuthenticated reports whether a token is held.
func (s *Service) IsAuthenticated() bool {
	return s.Token() != ""
}

// Token returns the current bearer token, or empty when unauthenticated.
// Implements backend.TokenProvider.
func (s *Service) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// CurrentUser returns a copy of the current user, or nil.
func (s *Service) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// Role returns the current user's role, defaulting to "agent".
func (s *Service) Role() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.EffectiveRole()
}

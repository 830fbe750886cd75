// Package session tracks the active customer-service session and a bounded
// history of ended ones.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agentdesk/console-service/internal/core/archive"
	domainerrors "github.com/agentdesk/console-service/internal/domain/errors"
	"github.com/agentdesk/console-service/internal/domain/models"
	"github.com/agentdesk/console-service/internal/services/backend"
	"github.com/agentdesk/console-service/internal/services/status"
)

// HistoryLimit bounds the session history; only the most recent sessions are
// retained, newest first.
const HistoryLimit = 10

const (
	errCreateSession = "Failed to create session"
	errGetSession    = "Failed to get session"
	errEndSession    = "Failed to end session"
)

// Service holds the active session, the current customer and the history.
// An archived session is never simultaneously active: archival always stamps
// a copy and clears the active slot in the same mutation.
type Service struct {
	mu       sync.Mutex
	backend  backend.Client
	status   *status.Service
	archive  archive.Archive
	active   *models.Session
	customer *models.Customer
	history  []models.Session
	now      func() time.Time
}

// Config holds the configuration for the session service.
type Config struct {
	Backend backend.Client
	Status  *status.Service
	// Archive receives ended sessions; optional.
	Archive archive.Archive
}

// NewService creates a new session service.
func NewService(cfg *Config) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Backend == nil {
		return nil, fmt.Errorf("backend client is required")
	}
	if cfg.Status == nil {
		return nil, fmt.Errorf("status service is required")
	}

	return &Service{
		backend: cfg.Backend,
		status:  cfg.Status,
		archive: cfg.Archive,
		now:     time.Now,
	}, nil
}

// Create posts a new session for the customer, fetches the customer profile,
// and commits both together. If the profile fetch fails the already-created
// backend session is not rolled back; the console simply never adopts it.
func (s *Service) Create(ctx context.Context, customerID string) (*models.Session, error) {
	s.status.Begin()
	defer s.status.End()

	session, err := s.backend.CreateSession(ctx, customerID)
	if err != nil {
		return nil, s.fail(errCreateSession, err)
	}

	customer, err := s.backend.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, s.fail(errCreateSession, err)
	}

	s.commit(session, customer)
	return session, nil
}

// Resume fetches an existing session and its customer and commits both.
func (s *Service) Resume(ctx context.Context, sessionID string) (*models.Session, error) {
	s.status.Begin()
	defer s.status.End()

	session, err := s.backend.GetSession(ctx, sessionID)
	if err != nil {
		return nil, s.fail(errGetSession, err)
	}

	customer, err := s.backend.GetCustomer(ctx, session.CustomerID)
	if err != nil {
		return nil, s.fail(errGetSession, err)
	}

	s.commit(session, customer)
	return session, nil
}

// End marks the active session ended on the backend, archives a stamped copy
// into history and clears the active session and current customer. No-op
// when no session is active. On backend failure the state is left unmutated.
func (s *Service) End(ctx context.Context) error {
	s.mu.Lock()
	active := s.active
	s.mu.Unlock()
	if active == nil {
		return nil
	}

	s.status.Begin()
	defer s.status.End()

	if err := s.backend.EndSession(ctx, active.SessionID); err != nil {
		return s.fail(errEndSession, err)
	}

	s.archiveActive(ctx)
	return nil
}

// Clear archives the active session locally (stamped with an end time) and
// clears it, without a backend call. Used for non-graceful resets such as
// logout. No-op when no session is active.
func (s *Service) Clear(ctx context.Context) {
	s.archiveActive(ctx)
}

// archiveActive moves the active session into history and clears state.
func (s *Service) archiveActive(ctx context.Context) {
	s.mu.Lock()
	if s.active == nil {
		s.mu.Unlock()
		return
	}
	ended := s.active.Ended(s.now())
	s.history = append([]models.Session{ended}, s.history...)
	if len(s.history) > HistoryLimit {
		s.history = s.history[:HistoryLimit]
	}
	s.active = nil
	s.customer = nil
	s.mu.Unlock()

	if s.archive != nil {
		if err := s.archive.SaveEndedSession(ctx, &ended); err != nil {
			log.Warn().Err(err).Str("session_id", ended.SessionID).Msg("failed to archive ended session")
		}
	}
}

// commit installs the session and customer in one mutation.
func (s *Service) commit(session *models.Session, customer *models.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = session
	s.customer = customer
}

// fail records the failure globally and wraps it for the caller.
func (s *Service) fail(message string, err error) error {
	detail := backend.ErrorDetail(err)
	s.status.SetError(message, detail)
	return domainerrors.NewRequestFailedError(message, detail, err)
}

// Active returns the active session, or nil.
func (s *Service) Active() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil
	}
	session := *s.active
	return &session
}

// Customer returns the current customer, or nil.
func (s *Service) Customer() *models.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.customer == nil {
		return nil
	}
	customer := *s.customer
	return &customer
}

// HasActive reports whether a session is active.
func (s *Service) HasActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active != nil
}

// History returns a copy of the session history, newest first.
func (s *Service) History() []models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Session, len(s.history))
	copy(out, s.history)
	return out
}

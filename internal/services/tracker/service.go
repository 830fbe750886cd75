// Package tracker implements the request/response correlation mechanism: it
// submits domain service requests bound to the active session, records them,
// and resolves their eventual outcome by polling.
//
// One generic implementation serves both service domains; billing and
// international get separate instances whose request lists, response maps
// and poll loops never touch each other.
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/agentdesk/console-service/internal/core/archive"
	domainerrors "github.com/agentdesk/console-service/internal/domain/errors"
	"github.com/agentdesk/console-service/internal/domain/models"
	"github.com/agentdesk/console-service/internal/services/backend"
	"github.com/agentdesk/console-service/internal/services/status"
)

const (
	// DefaultPollInterval is the fixed delay between poll cycles.
	DefaultPollInterval = 2 * time.Second

	// DefaultMaxPollAttempts bounds a poll loop; with the default interval a
	// loop spans roughly 30 seconds of wall clock.
	DefaultMaxPollAttempts = 15
)

// SessionState is the slice of session state the tracker depends on.
type SessionState interface {
	Active() *models.Session
	Customer() *models.Customer
}

// Service tracks service requests for one domain.
type Service struct {
	domain       Domain
	backend      backend.Client
	sessions     SessionState
	status       *status.Service
	archive      archive.Archive
	pollInterval time.Duration
	maxAttempts  int
	now          func() time.Time

	mu        sync.Mutex
	requests  []models.ServiceRequest
	responses map[string]models.ServiceResponse
	snapshot  json.RawMessage
	catalog   json.RawMessage
	polls     map[string]*Poll
	wg        sync.WaitGroup
}

// Config holds the configuration for a tracker instance.
type Config struct {
	Domain   Domain
	Backend  backend.Client
	Sessions SessionState
	Status   *status.Service
	// Archive receives resolved request/response pairs; optional.
	Archive archive.Archive
	// PollInterval overrides DefaultPollInterval; mainly for tests.
	PollInterval time.Duration
	// MaxPollAttempts overrides DefaultMaxPollAttempts; mainly for tests.
	MaxPollAttempts int
}

// NewService creates a new tracker for the configured domain.
func NewService(cfg *Config) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Domain.Name == "" {
		return nil, fmt.Errorf("domain is required")
	}
	if cfg.Backend == nil {
		return nil, fmt.Errorf("backend client is required")
	}
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("session state is required")
	}
	if cfg.Status == nil {
		return nil, fmt.Errorf("status service is required")
	}

	pollInterval := cfg.PollInterval
	if pollInterval == 0 {
		pollInterval = DefaultPollInterval
	}
	maxAttempts := cfg.MaxPollAttempts
	if maxAttempts == 0 {
		maxAttempts = DefaultMaxPollAttempts
	}

	return &Service{
		domain:       cfg.Domain,
		backend:      cfg.Backend,
		sessions:     cfg.Sessions,
		status:       cfg.Status,
		archive:      cfg.Archive,
		pollInterval: pollInterval,
		maxAttempts:  maxAttempts,
		now:          time.Now,
		responses:    make(map[string]models.ServiceResponse),
		polls:        make(map[string]*Poll),
	}, nil
}

// Domain returns the domain this tracker serves.
func (s *Service) Domain() Domain {
	return s.domain
}

// Submit posts a domain request bound to the active session and current
// customer, records a pending entry at the front of the request list, and
// starts a detached poll loop for the returned request id. The submission
// result is returned immediately, independent of poll completion.
//
// The active-session precondition is checked synchronously before any
// network call.
func (s *Service) Submit(ctx context.Context, requestType string, details map[string]any) (*backend.SubmissionAck, error) {
	active := s.sessions.Active()
	if active == nil {
		return nil, domainerrors.NewNoActiveSessionError()
	}

	customerID := ""
	if customer := s.sessions.Customer(); customer != nil {
		customerID = customer.ID
	}

	// Loading toggles around the submission only, not the polling after it.
	s.status.Begin()
	defer s.status.End()

	ack, err := s.backend.SubmitServiceRequest(ctx, s.domain.RequestsPath, active.SessionID, &backend.ServiceRequestSubmission{
		CustomerID:  customerID,
		RequestType: requestType,
		Details:     details,
	})
	if err != nil {
		return nil, s.fail(s.domain.SubmitError, err)
	}

	req := models.ServiceRequest{
		RequestID: ack.RequestID,
		Type:      requestType,
		Details:   details,
		Timestamp: s.now().UTC(),
		Status:    models.StatusPending,
	}

	s.mu.Lock()
	s.requests = append([]models.ServiceRequest{req}, s.requests...)
	s.mu.Unlock()

	s.startPoll(req, active.SessionID, customerID)

	return ack, nil
}

// FetchCustomerSnapshot fetches the customer-scoped snapshot for the current
// customer (bill history or usage, per domain) and replaces any prior one.
// Fails synchronously when no customer is selected.
func (s *Service) FetchCustomerSnapshot(ctx context.Context) (json.RawMessage, error) {
	customer := s.sessions.Customer()
	if customer == nil {
		return nil, domainerrors.NewNoCustomerSelectedError()
	}

	s.status.Begin()
	defer s.status.End()

	raw, err := s.backend.GetSnapshot(ctx, s.domain.SnapshotPath(customer.ID))
	if err != nil {
		return nil, s.fail(s.domain.SnapshotError, err)
	}

	s.mu.Lock()
	s.snapshot = raw
	s.mu.Unlock()
	return raw, nil
}

// FetchCatalog fetches the domain-wide catalog (plans or packages),
// independent of any customer, and replaces any prior one.
func (s *Service) FetchCatalog(ctx context.Context) (json.RawMessage, error) {
	s.status.Begin()
	defer s.status.End()

	raw, err := s.backend.GetSnapshot(ctx, s.domain.CatalogPath)
	if err != nil {
		return nil, s.fail(s.domain.CatalogError, err)
	}

	s.mu.Lock()
	s.catalog = raw
	s.mu.Unlock()
	return raw, nil
}

// ClearCustomerData resets the customer-scoped snapshot only; submitted
// requests, responses and the catalog are left intact.
func (s *Service) ClearCustomerData() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
}

// Requests returns a copy of the tracked requests, newest first.
func (s *Service) Requests() []models.ServiceRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ServiceRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// Response returns the stored response for the request id, if resolved.
func (s *Service) Response(requestID string) (*models.ServiceResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, ok := s.responses[requestID]
	if !ok {
		return nil, false
	}
	return &resp, true
}

// Responses returns a copy of the response map.
func (s *Service) Responses() map[string]models.ServiceResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]models.ServiceResponse, len(s.responses))
	for id, resp := range s.responses {
		out[id] = resp
	}
	return out
}

// Snapshot returns the customer-scoped snapshot, or nil.
func (s *Service) Snapshot() json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Catalog returns the domain catalog, or nil.
func (s *Service) Catalog() json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog
}

// fail records the failure globally and wraps it for the caller.
func (s *Service) fail(message string, err error) error {
	detail := backend.ErrorDetail(err)
	s.status.SetError(message, detail)
	return domainerrors.NewRequestFailedError(message, detail, err)
}

// Package status holds the process-wide UI state: the busy indicator, the
// last error record, and the console language preference.
//
// Every asynchronous action brackets itself with Begin/End. The indicator is
// a counter rather than a boolean so overlapping actions cannot clear each
// other's loading state early; the error record keeps last-write-wins
// semantics, a later failure overwrites an earlier one.
package status

import (
	"context"
	"fmt"
	"sync"

	"github.com/agentdesk/console-service/internal/core/kv"
	"github.com/agentdesk/console-service/internal/domain/models"
)

// DefaultLanguage is used when no preference has been persisted.
const DefaultLanguage = "en"

// Service provides the global UI state.
type Service struct {
	mu       sync.Mutex
	store    kv.Store
	busy     int
	lastErr  *models.ErrorRecord
	language string
}

// Config holds the configuration for the status service.
type Config struct {
	// Store persists the language preference. Required.
	Store kv.Store
}

// NewService creates a new status service.
func NewService(cfg *Config) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}

	return &Service{
		store:    cfg.Store,
		language: DefaultLanguage,
	}, nil
}

// Begin marks the start of an asynchronous action.
func (s *Service) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy++
}

// End marks the completion of an asynchronous action.
func (s *Service) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy > 0 {
		s.busy--
	}
}

// IsLoading reports whether any action is still in flight.
func (s *Service) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy > 0
}

// SetError overwrites the global error record.
func (s *Service) SetError(message, details string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = &models.ErrorRecord{Message: message, Details: details}
}

// Error returns a copy of the last error record, or nil when clear.
func (s *Service) Error() *models.ErrorRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastErr == nil {
		return nil
	}
	rec := *s.lastErr
	return &rec
}

// ClearError resets the global error record.
func (s *Service) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}

// SetLanguage updates and persists the console language preference.
func (s *Service) SetLanguage(ctx context.Context, language string) error {
	if language == "" {
		return fmt.Errorf("language is required")
	}
	if err := s.store.Set(ctx, kv.KeyLanguage, []byte(language)); err != nil {
		return fmt.Errorf("failed to persist language: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = language
	return nil
}

// Language returns the current language preference.
func (s *Service) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// Restore loads the persisted language preference, if any. Called once at
// startup before the facade starts serving.
func (s *Service) Restore(ctx context.Context) error {
	val, err := s.store.Get(ctx, kv.KeyLanguage)
	if err != nil {
		return fmt.Errorf("failed to load language: %w", err)
	}
	if len(val) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = string(val)
	return nil
}

// Package archive defines the durable archive interface.
//
// The archive keeps an auditable trail of what happened during a shift:
// service requests that resolved (request and response paired by id) and
// customer sessions that ended. It is write-mostly and best-effort; the
// in-memory state layer never reads it back.
package archive

import (
	"context"
	"time"

	"github.com/agentdesk/console-service/internal/domain/models"
)

// ResolvedRequest pairs a tracked service request with its resolved response.
type ResolvedRequest struct {
	Domain     string                 `bson:"domain" json:"domain"`
	SessionID  string                 `bson:"session_id" json:"session_id"`
	CustomerID string                 `bson:"customer_id" json:"customer_id"`
	Request    models.ServiceRequest  `bson:"request" json:"request"`
	Response   models.ServiceResponse `bson:"response" json:"response"`
	ResolvedAt time.Time              `bson:"resolved_at" json:"resolved_at"`
}

// Archive defines the interface for durable archive writes.
type Archive interface {
	// SaveResolvedRequest records a request/response pair once the poll loop
	// resolves it.
	SaveResolvedRequest(ctx context.Context, rec *ResolvedRequest) error

	// SaveEndedSession records a session after it has been ended or cleared.
	SaveEndedSession(ctx context.Context, session *models.Session) error

	// Ping checks if the archive connection is alive.
	Ping(ctx context.Context) error

	// Close closes the archive connection.
	Close(ctx context.Context) error
}

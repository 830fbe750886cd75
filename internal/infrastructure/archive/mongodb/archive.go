// Package mongodb provides the MongoDB archive implementation.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agentdesk/console-service/internal/core/archive"
	"github.com/agentdesk/console-service/internal/domain/models"
)

const (
	// ResolvedRequestsCollection is the name of the resolved requests collection.
	ResolvedRequestsCollection = "resolved_requests"
	// SessionsCollection is the name of the ended sessions collection.
	SessionsCollection = "ended_sessions"
)

// Archive implements the archive.Archive interface for MongoDB.
type Archive struct {
	client           *mongo.Client
	resolvedRequests *mongo.Collection
	endedSessions    *mongo.Collection
}

// Config holds MongoDB connection configuration.
type Config struct {
	URI          string
	DatabaseName string
}

// NewArchive creates a new MongoDB archive and verifies the connection.
func NewArchive(ctx context.Context, cfg *Config) (*Archive, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongodb URI is required")
	}
	if cfg.DatabaseName == "" {
		return nil, fmt.Errorf("database name is required")
	}

	clientOpts := options.Client().ApplyURI(cfg.URI)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(cfg.DatabaseName)

	return &Archive{
		client:           client,
		resolvedRequests: db.Collection(ResolvedRequestsCollection),
		endedSessions:    db.Collection(SessionsCollection),
	}, nil
}

// SaveResolvedRequest inserts a resolved request/response pair.
func (a *Archive) SaveResolvedRequest(ctx context.Context, rec *archive.ResolvedRequest) error {
	if rec == nil {
		return fmt.Errorf("record is required")
	}
	if rec.Request.RequestID == "" {
		return fmt.Errorf("request ID is required")
	}

	if rec.ResolvedAt.IsZero() {
		rec.ResolvedAt = time.Now().UTC()
	}

	if _, err := a.resolvedRequests.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to insert resolved request: %w", err)
	}
	return nil
}

// SaveEndedSession inserts an ended session.
func (a *Archive) SaveEndedSession(ctx context.Context, session *models.Session) error {
	if session == nil {
		return fmt.Errorf("session is required")
	}
	if session.SessionID == "" {
		return fmt.Errorf("session ID is required")
	}

	if _, err := a.endedSessions.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("failed to insert ended session: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes the archive queries rely on.
func (a *Archive) EnsureIndexes(ctx context.Context) error {
	requestIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "request.requestId", Value: 1}},
	}
	if _, err := a.resolvedRequests.Indexes().CreateOne(ctx, requestIdx); err != nil {
		return fmt.Errorf("failed to create resolved requests index: %w", err)
	}

	sessionIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "session_id", Value: 1}},
	}
	if _, err := a.endedSessions.Indexes().CreateOne(ctx, sessionIdx); err != nil {
		return fmt.Errorf("failed to create ended sessions index: %w", err)
	}
	return nil
}

// Ping verifies the connection to MongoDB.
func (a *Archive) Ping(ctx context.Context) error {
	if err := a.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongodb ping failed: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (a *Archive) Close(ctx context.Context) error {
	if err := a.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	return nil
}

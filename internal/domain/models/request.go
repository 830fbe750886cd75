package models

import "time"

// Request lifecycle statuses as reported by the backend poll endpoint.
// Anything other than StatusPending terminates a poll loop.
const (
	StatusPending  = "pending"
	StatusResolved = "resolved"
	StatusTimedOut = "timed-out"
	StatusFailed   = "failed"
)

// ServiceRequest is a submitted billing or international request as tracked
// by the console. Entries are immutable once recorded; the eventual outcome
// lives in a separate ServiceResponse keyed by RequestID.
type ServiceRequest struct {
	RequestID string         `json:"requestId" bson:"requestId"`
	Type      string         `json:"type" bson:"type"`
	Details   map[string]any `json:"details" bson:"details"`
	Timestamp time.Time      `json:"timestamp" bson:"timestamp"`
	Status    string         `json:"status" bson:"status"`
}

// ServiceResponse is the resolved outcome of a service request, stored once
// the poll endpoint reports a non-pending status.
type ServiceResponse struct {
	RequestID string         `json:"request_id" bson:"request_id"`
	Status    string         `json:"status" bson:"status"`
	Response  map[string]any `json:"response,omitempty" bson:"response,omitempty"`
	Timestamp string         `json:"timestamp,omitempty" bson:"timestamp,omitempty"`
}

// Pending reports whether the backend is still processing the request.
func (r *ServiceResponse) Pending() bool {
	return r.Status == StatusPending
}

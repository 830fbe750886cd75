// Package models contains domain models for the Agent Console Service.
package models

import "time"

// Session represents a bounded interaction between an agent and one customer.
// Field names follow the backend wire format.
type Session struct {
	SessionID        string            `json:"session_id" bson:"session_id"`
	CustomerID       string            `json:"customer_id" bson:"customer_id"`
	StartTime        string            `json:"start_time" bson:"start_time"`
	EndTime          string            `json:"end_time,omitempty" bson:"end_time,omitempty"`
	UserID           string            `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Active           bool              `json:"active,omitempty" bson:"active,omitempty"`
	AgentAssignments map[string]string `json:"agent_assignments,omitempty" bson:"agent_assignments,omitempty"`
}

// Ended returns a copy of the session stamped with the given end time.
// The receiver is left untouched; an archived session never aliases the
// active one.
func (s Session) Ended(at time.Time) Session {
	ended := s
	ended.EndTime = at.UTC().Format(time.RFC3339)
	ended.Active = false
	return ended
}

package models

import "encoding/json"

// Customer is the profile fetched from the backend for the customer bound to
// the active session. The profile is treated as opaque beyond its identifier;
// the backend owns its shape.
type Customer struct {
	ID      string          `json:"id"`
	Name    string          `json:"name,omitempty"`
	Phone   string          `json:"phone,omitempty"`
	Plan    string          `json:"plan,omitempty"`
	Profile json.RawMessage `json:"profile,omitempty"`
}

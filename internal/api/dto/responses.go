package dto

import (
	"encoding/json"

	"github.com/agentdesk/console-service/internal/domain/models"
)

// ConsoleStateResponse is the process-wide console state exposed to the UI.
type ConsoleStateResponse struct {
	IsLoading     bool                `json:"isLoading"`
	Error         *models.ErrorRecord `json:"error,omitempty"`
	Language      string              `json:"language"`
	Authenticated bool                `json:"authenticated"`
	Role          string              `json:"role,omitempty"`
}

// SessionStateResponse is the session state exposed to the UI.
type SessionStateResponse struct {
	Active   *models.Session  `json:"activeSession"`
	Customer *models.Customer `json:"currentCustomer"`
	History  []models.Session `json:"sessionHistory"`
}

// ServiceRequestsResponse lists tracked requests with their resolved
// responses for one domain.
type ServiceRequestsResponse struct {
	Requests  []models.ServiceRequest           `json:"requests"`
	Responses map[string]models.ServiceResponse `json:"responses"`
}

// SnapshotResponse wraps a raw snapshot or catalog payload.
type SnapshotResponse struct {
	Data json.RawMessage `json:"data"`
}

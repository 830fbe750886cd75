package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agentdesk/console-service/internal/api/dto"
	"github.com/agentdesk/console-service/internal/domain/models"
	"github.com/agentdesk/console-service/internal/services/session"
	"github.com/agentdesk/console-service/internal/services/tracker"
)

// SupervisorHandler exposes a cross-domain view of the shift, restricted to
// the supervisor role by the route guard.
type SupervisorHandler struct {
	sessions      *session.Service
	billing       *tracker.Service
	international *tracker.Service
}

// NewSupervisorHandler creates a new SupervisorHandler.
func NewSupervisorHandler(sessionSvc *session.Service, billing, international *tracker.Service) *SupervisorHandler {
	return &SupervisorHandler{
		sessions:      sessionSvc,
		billing:       billing,
		international: international,
	}
}

// OverviewResponse aggregates session history and both domains' requests.
type OverviewResponse struct {
	SessionHistory []models.Session            `json:"sessionHistory"`
	Billing        dto.ServiceRequestsResponse `json:"billing"`
	International  dto.ServiceRequestsResponse `json:"international"`
}

// Overview handles GET /supervisor/overview.
func (h *SupervisorHandler) Overview(c *gin.Context) {
	c.JSON(http.StatusOK, OverviewResponse{
		SessionHistory: h.sessions.History(),
		Billing: dto.ServiceRequestsResponse{
			Requests:  h.billing.Requests(),
			Responses: h.billing.Responses(),
		},
		International: dto.ServiceRequestsResponse{
			Requests:  h.international.Requests(),
			Responses: h.international.Responses(),
		},
	})
}

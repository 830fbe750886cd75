package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agentdesk/console-service/internal/api/dto"
	"github.com/agentdesk/console-service/internal/api/middleware"
	domainerrors "github.com/agentdesk/console-service/internal/domain/errors"
	"github.com/agentdesk/console-service/internal/services/auth"
	"github.com/agentdesk/console-service/internal/services/status"
)

// StateHandler exposes the process-wide console state.
type StateHandler struct {
	status *status.Service
	auth   *auth.Service
}

// NewStateHandler creates a new StateHandler.
func NewStateHandler(statusSvc *status.Service, authSvc *auth.Service) *StateHandler {
	return &StateHandler{
		status: statusSvc,
		auth:   authSvc,
	}
}

// State handles GET /state.
func (h *StateHandler) State(c *gin.Context) {
	resp := dto.ConsoleStateResponse{
		IsLoading:     h.status.IsLoading(),
		Error:         h.status.Error(),
		Language:      h.status.Language(),
		Authenticated: h.auth.IsAuthenticated(),
	}
	if resp.Authenticated {
		resp.Role = h.auth.Role()
	}
	c.JSON(http.StatusOK, resp)
}

// ClearError handles POST /state/clear-error.
func (h *StateHandler) ClearError(c *gin.Context) {
	h.status.ClearError()
	c.Status(http.StatusNoContent)
}

// SetLanguage handles PUT /state/language.
func (h *StateHandler) SetLanguage(c *gin.Context) {
	var req dto.SetLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid language request", err.Error()))
		return
	}

	if err := h.status.SetLanguage(c.Request.Context(), req.Language); err != nil {
		middleware.HandleError(c, domainerrors.NewInternalError("failed to set language", err))
		return
	}
	c.Status(http.StatusNoContent)
}

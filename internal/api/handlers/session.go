package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agentdesk/console-service/internal/api/dto"
	"github.com/agentdesk/console-service/internal/api/middleware"
	domainerrors "github.com/agentdesk/console-service/internal/domain/errors"
	"github.com/agentdesk/console-service/internal/services/session"
)

// SessionHandler handles customer session endpoints.
type SessionHandler struct {
	sessions *session.Service
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionSvc *session.Service) *SessionHandler {
	return &SessionHandler{sessions: sessionSvc}
}

// Create handles POST /sessions.
func (h *SessionHandler) Create(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid session request", err.Error()))
		return
	}

	created, err := h.sessions.Create(c.Request.Context(), req.CustomerID)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Resume handles POST /sessions/:sessionId/resume.
func (h *SessionHandler) Resume(c *gin.Context) {
	resumed, err := h.sessions.Resume(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resumed)
}

// State handles GET /sessions/state.
func (h *SessionHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, dto.SessionStateResponse{
		Active:   h.sessions.Active(),
		Customer: h.sessions.Customer(),
		History:  h.sessions.History(),
	})
}

// End handles POST /sessions/end.
func (h *SessionHandler) End(c *gin.Context) {
	if err := h.sessions.End(c.Request.Context()); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Clear handles POST /sessions/clear.
func (h *SessionHandler) Clear(c *gin.Context) {
	h.sessions.Clear(c.Request.Context())
	c.Status(http.StatusNoContent)
}

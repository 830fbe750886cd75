package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agentdesk/console-service/internal/api/dto"
	"github.com/agentdesk/console-service/internal/api/middleware"
	domainerrors "github.com/agentdesk/console-service/internal/domain/errors"
	"github.com/agentdesk/console-service/internal/services/auth"
	"github.com/agentdesk/console-service/internal/services/session"
)

// AuthHandler handles agent authentication endpoints.
type AuthHandler struct {
	auth     *auth.Service
	sessions *session.Service
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc *auth.Service, sessionSvc *session.Service) *AuthHandler {
	return &AuthHandler{
		auth:     authSvc,
		sessions: sessionSvc,
	}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid login request", err.Error()))
		return
	}

	grant, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, grant)
}

// Logout handles POST /auth/logout. A logout is a non-graceful reset: the
// active session, if any, is archived locally without a backend call.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Clear(c.Request.Context())
	h.auth.Logout(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	user := h.auth.CurrentUser()
	if user == nil {
		middleware.HandleError(c, domainerrors.NewUnauthorizedError("not authenticated"))
		return
	}
	c.JSON(http.StatusOK, user)
}

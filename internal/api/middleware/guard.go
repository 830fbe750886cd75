package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/agentdesk/console-service/internal/domain/errors"
)

// AuthState is the slice of auth state the navigation guard consumes.
type AuthState interface {
	IsAuthenticated() bool
	Role() string
}

// Guard enforces route-level authorization from the console's auth state,
// mirroring the UI router's navigation guard: unauthenticated requests are
// turned away before the handler runs.
type Guard struct {
	auth AuthState
}

// NewGuard creates a new Guard.
func NewGuard(auth AuthState) *Guard {
	return &Guard{auth: auth}
}

// RequireAuth returns a gin middleware that rejects requests while the
// console is unauthenticated.
func (g *Guard) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !g.auth.IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    domainerrors.ErrCodeUnauthorized,
				Message: "not authenticated",
			})
			return
		}
		c.Next()
	}
}

// RequireRole returns a gin middleware that additionally requires the
// current user to hold the given role.
func (g *Guard) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !g.auth.IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    domainerrors.ErrCodeUnauthorized,
				Message: "not authenticated",
			})
			return
		}
		if g.auth.Role() != role {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Code:    domainerrors.ErrCodeForbidden,
				Message: "insufficient role",
				Details: role + " required",
			})
			return
		}
		c.Next()
	}
}

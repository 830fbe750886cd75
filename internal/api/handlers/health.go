// Package handlers provides HTTP handlers for the console facade.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agentdesk/console-service/internal/core/archive"
	"github.com/agentdesk/console-service/internal/core/kv"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	store   kv.Store
	archive archive.Archive
}

// NewHealthHandler creates a new HealthHandler. The archive may be nil when
// archiving is disabled.
func NewHealthHandler(store kv.Store, arc archive.Archive) *HealthHandler {
	return &HealthHandler{
		store:   store,
		archive: arc,
	}
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	components := make(map[string]string)
	healthy := true

	if err := h.store.Ping(c.Request.Context()); err != nil {
		components["kv"] = "unhealthy"
		healthy = false
	} else {
		components["kv"] = "healthy"
	}

	if h.archive != nil {
		if err := h.archive.Ping(c.Request.Context()); err != nil {
			components["archive"] = "unhealthy"
			healthy = false
		} else {
			components["archive"] = "healthy"
		}
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:     status,
		Components: components,
	})
}

// Live handles GET /live.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

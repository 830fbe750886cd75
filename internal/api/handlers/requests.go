package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agentdesk/console-service/internal/api/dto"
	"github.com/agentdesk/console-service/internal/api/middleware"
	domainerrors "github.com/agentdesk/console-service/internal/domain/errors"
	"github.com/agentdesk/console-service/internal/services/tracker"
)

// RequestsHandler exposes one domain tracker (billing or international) over
// the facade. Two instances are mounted, one per domain route group.
type RequestsHandler struct {
	tracker *tracker.Service
}

// NewRequestsHandler creates a new RequestsHandler.
func NewRequestsHandler(trackerSvc *tracker.Service) *RequestsHandler {
	return &RequestsHandler{tracker: trackerSvc}
}

// Submit handles POST /{domain}/requests.
func (h *RequestsHandler) Submit(c *gin.Context) {
	var req dto.SubmitServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid service request", err.Error()))
		return
	}

	ack, err := h.tracker.Submit(c.Request.Context(), req.RequestType, req.Details)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, ack)
}

// List handles GET /{domain}/requests.
func (h *RequestsHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ServiceRequestsResponse{
		Requests:  h.tracker.Requests(),
		Responses: h.tracker.Responses(),
	})
}

// GetResponse handles GET /{domain}/responses/:requestId.
func (h *RequestsHandler) GetResponse(c *gin.Context) {
	requestID := c.Param("requestId")
	resp, ok := h.tracker.Response(requestID)
	if !ok {
		middleware.HandleError(c, domainerrors.NewNotFoundError("response", requestID))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// FetchSnapshot handles GET /{domain} customer snapshot routes (bill
// history, international usage).
func (h *RequestsHandler) FetchSnapshot(c *gin.Context) {
	raw, err := h.tracker.FetchCustomerSnapshot(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SnapshotResponse{Data: raw})
}

// FetchCatalog handles GET /{domain} catalog routes (plans, packages).
func (h *RequestsHandler) FetchCatalog(c *gin.Context) {
	raw, err := h.tracker.FetchCatalog(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SnapshotResponse{Data: raw})
}

// ClearCustomerData handles POST /{domain}/clear.
func (h *RequestsHandler) ClearCustomerData(c *gin.Context) {
	h.tracker.ClearCustomerData()
	c.Status(http.StatusNoContent)
}

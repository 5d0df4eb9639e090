package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamavinashmourya/SIA/internal/auth"
	"github.com/iamavinashmourya/SIA/internal/model"
	"github.com/iamavinashmourya/SIA/internal/service"
)

// DashboardHandler handles the host dashboard REST API.
type DashboardHandler struct {
	svc *service.DashboardService
}

// NewDashboardHandler creates the dashboard handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Me godoc
// GET /api/dashboard/me
func (h *DashboardHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, model.HostView(auth.CurrentHost(c)))
}

// Stats godoc
// GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), auth.CurrentHost(c).ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Queue godoc
// GET /api/dashboard/queue
func (h *DashboardHandler) Queue(c *gin.Context) {
	items, err := h.svc.Queue(c.Request.Context(), auth.CurrentHost(c).ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get queue"})
		return
	}
	c.JSON(http.StatusOK, items)
}

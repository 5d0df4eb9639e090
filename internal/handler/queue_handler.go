package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamavinashmourya/SIA/internal/auth"
	"github.com/iamavinashmourya/SIA/internal/errs"
	"github.com/iamavinashmourya/SIA/internal/model"
	"github.com/iamavinashmourya/SIA/internal/service"
)

// QueueHandler handles the call-host queue REST API.
type QueueHandler struct {
	svc *service.QueueService
}

// NewQueueHandler creates the queue handler.
func NewQueueHandler(svc *service.QueueService) *QueueHandler {
	return &QueueHandler{svc: svc}
}

// CallHost godoc
// POST /api/queue/call-host
func (h *QueueHandler) CallHost(c *gin.Context) {
	var req model.CallHostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}
	status, err := h.svc.RequestIntervention(c.Request.Context(), req.SessionID)
	if err != nil {
		if errors.Is(err, errs.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found or ended"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to request host"})
		return
	}
	c.JSON(http.StatusCreated, status)
}

// Status godoc
// GET /api/queue/status/:session_id
//
// Status polling is the fallback to push delivery, so it always answers
// 200 with a payload, never an error.
func (h *QueueHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Status(c.Request.Context(), c.Param("session_id")))
}

// Item godoc
// GET /api/queue/item/:queue_id
func (h *QueueHandler) Item(c *gin.Context) {
	detail, err := h.svc.Item(c.Request.Context(), c.Param("queue_id"), auth.CurrentHost(c).ID)
	if err != nil {
		h.respondError(c, err, "view")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Accept godoc
// POST /api/queue/:queue_id/accept
func (h *QueueHandler) Accept(c *gin.Context) {
	result, err := h.svc.Accept(c.Request.Context(), c.Param("queue_id"), auth.CurrentHost(c).ID)
	if err != nil {
		h.respondError(c, err, "accept")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Decline godoc
// POST /api/queue/:queue_id/decline
func (h *QueueHandler) Decline(c *gin.Context) {
	result, err := h.svc.Decline(c.Request.Context(), c.Param("queue_id"), auth.CurrentHost(c).ID)
	if err != nil {
		h.respondError(c, err, "decline")
		return
	}
	c.JSON(http.StatusOK, result)
}

// RoomQueue godoc
// GET /api/rooms/:id/queue
func (h *QueueHandler) RoomQueue(c *gin.Context) {
	items, err := h.svc.RoomQueue(c.Request.Context(), c.Param("id"), auth.CurrentHost(c).ID)
	if err != nil {
		if errors.Is(err, errs.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list room queue"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *QueueHandler) respondError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, errs.ErrQueueEntryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "queue request not found"})
	case errors.Is(err, errs.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized to " + action + " this request"})
	case errors.Is(err, errs.ErrQueueEntryResolved):
		c.JSON(http.StatusConflict, gin.H{"error": "queue request already resolved"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to " + action + " request"})
	}
}

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

// RoomHandler handles the host-facing room REST API.
type RoomHandler struct {
	svc *service.RoomService
}

// NewRoomHandler creates the room handler.
func NewRoomHandler(svc *service.RoomService) *RoomHandler {
	return &RoomHandler{svc: svc}
}

// Create godoc
// POST /api/rooms
func (h *RoomHandler) Create(c *gin.Context) {
	var req model.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}
	room, err := h.svc.Create(c.Request.Context(), auth.CurrentHost(c).ID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}
	c.JSON(http.StatusCreated, model.RoomView(room))
}

// List godoc
// GET /api/rooms
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.svc.List(c.Request.Context(), auth.CurrentHost(c).ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms"})
		return
	}
	out := make([]model.RoomResponse, 0, len(rooms))
	for i := range rooms {
		out = append(out, model.RoomView(&rooms[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get godoc
// GET /api/rooms/:id
func (h *RoomHandler) Get(c *gin.Context) {
	room, err := h.svc.Get(c.Request.Context(), c.Param("id"), auth.CurrentHost(c).ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.RoomView(room))
}

// Update godoc
// PATCH /api/rooms/:id
func (h *RoomHandler) Update(c *gin.Context) {
	var req model.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}
	room, err := h.svc.Update(c.Request.Context(), c.Param("id"), auth.CurrentHost(c).ID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.RoomView(room))
}

// Delete godoc
// DELETE /api/rooms/:id
func (h *RoomHandler) Delete(c *gin.Context) {
	if err := h.svc.Deactivate(c.Request.Context(), c.Param("id"), auth.CurrentHost(c).ID); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RoomHandler) respondError(c *gin.Context, err error) {
	if errors.Is(err, errs.ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "room operation failed"})
}

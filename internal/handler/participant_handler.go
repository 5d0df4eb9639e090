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

// ParticipantHandler handles participant join and session REST endpoints.
type ParticipantHandler struct {
	svc    *service.SessionService
	tokens *auth.TokenManager
}

// NewParticipantHandler creates the participant handler.
func NewParticipantHandler(svc *service.SessionService, tokens *auth.TokenManager) *ParticipantHandler {
	return &ParticipantHandler{svc: svc, tokens: tokens}
}

// Join godoc
// POST /api/participants/join
func (h *ParticipantHandler) Join(c *gin.Context) {
	var req model.JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}

	// A valid host token on the join request means a logged-in host is
	// trying the participant flow; an invalid token is treated as an
	// anonymous participant.
	callerIsHost := false
	if token, ok := auth.BearerToken(c); ok {
		if _, err := h.tokens.Verify(token); err == nil {
			callerIsHost = true
		}
	}

	info, err := h.svc.Join(c.Request.Context(), req.InviteLink, req.Name, callerIsHost)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrHostCannotJoin):
			c.JSON(http.StatusForbidden, gin.H{"error": errs.ErrHostCannotJoin.Error()})
		case errors.Is(err, errs.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "invalid or inactive invite link"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join room"})
		}
		return
	}
	c.JSON(http.StatusCreated, info)
}

// GetSession godoc
// GET /api/participants/session/:id
func (h *ParticipantHandler) GetSession(c *gin.Context) {
	info, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, errs.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get session"})
		return
	}
	c.JSON(http.StatusOK, info)
}

// EndSession godoc
// POST /api/participants/session/:id/end
func (h *ParticipantHandler) EndSession(c *gin.Context) {
	sessionID := c.Param("id")
	alreadyEnded, err := h.svc.End(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, errs.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to end session"})
		return
	}
	msg := "Session ended successfully"
	if alreadyEnded {
		msg = "Session already ended"
	}
	c.JSON(http.StatusOK, model.EndSessionResponse{Message: msg, SessionID: sessionID})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iamavinashmourya/SIA/internal/auth"
	"github.com/iamavinashmourya/SIA/internal/errs"
	"github.com/iamavinashmourya/SIA/internal/model"
	"github.com/iamavinashmourya/SIA/internal/service"
)

// AuthHandler handles host registration and login.
type AuthHandler struct {
	hosts      service.HostStore
	tokens     *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(hosts service.HostStore, tokens *auth.TokenManager, bcryptCost int, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{hosts: hosts, tokens: tokens, bcryptCost: bcryptCost, logger: logger}
}

// Register godoc
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}
	if _, err := h.hosts.FindByEmail(c.Request.Context(), req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": errs.ErrEmailTaken.Error()})
		return
	}
	hash, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}
	host := &model.Host{ID: uuid.NewString(), Email: req.Email, Name: req.Name, PasswordHash: hash}
	if err := h.hosts.Create(c.Request.Context(), host); err != nil {
		h.logger.Error("create host failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}
	h.respondWithToken(c, http.StatusCreated, host)
}

// Login godoc
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}
	host, err := h.hosts.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, errs.ErrHostNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": errs.ErrInvalidCredentials.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in"})
		return
	}
	if !auth.CheckPassword(host.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errs.ErrInvalidCredentials.Error()})
		return
	}
	h.respondWithToken(c, http.StatusOK, host)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, code int, host *model.Host) {
	token, err := h.tokens.Issue(host.ID)
	if err != nil {
		h.logger.Error("issue token failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(code, model.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Host:        model.HostView(host),
	})
}

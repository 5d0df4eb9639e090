package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/iamavinashmourya/SIA/internal/model"
)

const hostContextKey = "currentHost"

// HostFinder resolves a host ID to a host record.
type HostFinder interface {
	Find(ctx context.Context, id string) (*model.Host, error)
}

// RequireHost is gin middleware that authenticates the request via a
// Bearer token and stores the host in the request context.
func RequireHost(tokens *TokenManager, hosts HostFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		hostID, err := tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		host, err := hosts.Find(c.Request.Context(), hostID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "host not found"})
			return
		}
		c.Set(hostContextKey, host)
		c.Next()
	}
}

// CurrentHost returns the authenticated host set by RequireHost.
func CurrentHost(c *gin.Context) *model.Host {
	v, ok := c.Get(hostContextKey)
	if !ok {
		return nil
	}
	host, _ := v.(*model.Host)
	return host
}

// BearerToken extracts the Bearer token from the Authorization header.
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

package handlers

import (
	"net/http"

	"people_api/internal/service"

	"github.com/gin-gonic/gin"
)

// usernameKey is where the auth gate leaves the caller's username in the gin context.
const usernameKey = "username"

func (h *Handler) authMiddleware(c *gin.Context) {
	token, err := c.Cookie(sessionCookie)
	if err != nil || token == "" {
		h.abortUnauthorized(c)
		return
	}

	username, err := h.services.Authorization.ParseToken(token)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_token_rejected", "err", err, "ip", c.ClientIP())
		}
		h.abortUnauthorized(c)
		return
	}

	// store in Gin context
	c.Set(usernameKey, username)
	c.Next()
}

func (h *Handler) abortUnauthorized(c *gin.Context) {
	code := http.StatusUnauthorized
	if h.opts.LegacyStatus {
		code = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(code, gin.H{"error": service.ErrUnauthorized.Error()})
}

// owner is the username set by the auth gate, or "" when auth is disabled.
func owner(c *gin.Context) string {
	return c.GetString(usernameKey)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookie       = "token"
	sessionMaxAge       = 3600 // seconds; a client hint only, the token itself never expires
	defaultCookieDomain = "localhost"
)

// setSession stores the token in an HttpOnly, SameSite=Lax cookie scoped to the whole site.
func (h *Handler) setSession(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, sessionMaxAge, "/", h.opts.CookieDomain, false, true)
}

// clearSession expires the cookie with the same attributes it was set with.
func (h *Handler) clearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", h.opts.CookieDomain, false, true)
}

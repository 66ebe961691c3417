package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	statusOK      = "ok"
	statusNotOK   = "unavailable"
	readyTimeout  = 2 * time.Second
	helloResponse = "world"
)

// @Summary      Hello
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func (h *Handler) hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"hello": helloResponse})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Readiness check
// @Description  Pings the database.
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /ready [get]
func (h *Handler) ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	if err := h.services.Health.Ping(ctx); err != nil {
		if h.log != nil {
			h.log.Errorw("readiness_failed", "err", err)
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": statusNotOK, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

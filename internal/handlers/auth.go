package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Single, shared credentials payload for both signup and login.
type authCredentials struct {
	Username string `json:"username" binding:"required" example:"u1"`
	Password string `json:"password" binding:"required" example:"p1"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "credentials"
// @Success      200   {object}  models.User
// @Failure      400   {object}  map[string]string
// @Router       /signup [post]
func (h *Handler) signUp(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, err := h.services.Authorization.SignUp(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_sign_up_failed", "username", input.Username, "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary      Log in
// @Description  Sets the session cookie "token" on success.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "credentials"
// @Success      200   {object}  models.User
// @Failure      400   {object}  map[string]string
// @Router       /login [post]
func (h *Handler) login(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, token, err := h.services.Authorization.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_login_failed", "username", input.Username, "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.setSession(c, token)
	c.JSON(http.StatusOK, user)
}

// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /logout [get]
func (h *Handler) logout(c *gin.Context) {
	h.clearSession(c)
	c.JSON(http.StatusOK, gin.H{"message": "Bye bye"})
}

// @Summary      Echo request cookies
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /cookietest [get]
func (h *Handler) cookieTest(c *gin.Context) {
	cookies := map[string]string{}
	for _, ck := range c.Request.Cookies() {
		cookies[ck.Name] = ck.Value
	}
	c.JSON(http.StatusOK, cookies)
}

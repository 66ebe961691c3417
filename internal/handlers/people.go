package handlers

import (
	"errors"
	"io"
	"net/http"

	"people_api/internal/models"

	"github.com/gin-gonic/gin"
)

// personInput is the create payload; ownership always comes from the session.
type personInput struct {
	Name  string `json:"name" example:"Ann"`
	Image string `json:"image" example:"https://example.com/ann.png"`
	Title string `json:"title" example:"CEO"`
}

// storeError answers every persistence failure the same way, as a client error.
func (h *Handler) storeError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	if h.log != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// bindOptionalJSON binds a body when one was sent; an empty body is fine.
func (h *Handler) bindOptionalJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      List people
// @Description  With auth enabled only the caller's records are returned.
// @Tags         people
// @Produce      json
// @Success      200  {array}   models.Person
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /people [get]
func (h *Handler) listPeople(c *gin.Context) {
	people, err := h.services.People.List(c.Request.Context(), owner(c))
	if err != nil {
		h.storeError(c, "people_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, people)
}

// @Summary      Create a person
// @Tags         people
// @Accept       json
// @Produce      json
// @Param        body  body      personInput  true  "person"
// @Success      200   {object}  models.Person
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /people [post]
func (h *Handler) createPerson(c *gin.Context) {
	var in personInput
	if !h.bindOptionalJSON(c, &in) {
		return
	}

	p, err := h.services.People.Create(c.Request.Context(), owner(c), models.Person{
		Name:  in.Name,
		Image: in.Image,
		Title: in.Title,
	})
	if err != nil {
		h.storeError(c, "people_create_failed", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Get a person
// @Description  Responds with null when the id is unknown or not owned by the caller.
// @Tags         people
// @Produce      json
// @Param        id   path      string  true  "person id"
// @Success      200  {object}  models.Person
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /people/{id} [get]
func (h *Handler) getPerson(c *gin.Context) {
	p, err := h.services.People.Get(c.Request.Context(), c.Param("id"), owner(c))
	if err != nil {
		h.storeError(c, "people_get_failed", err, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Update a person
// @Description  Only the fields present in the body change.
// @Tags         people
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "person id"
// @Param        body  body      models.PersonPatch  true  "fields to change"
// @Success      200   {object}  models.Person
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /people/{id} [put]
func (h *Handler) updatePerson(c *gin.Context) {
	var patch models.PersonPatch
	if !h.bindOptionalJSON(c, &patch) {
		return
	}

	p, err := h.services.People.Update(c.Request.Context(), c.Param("id"), owner(c), patch)
	if err != nil {
		h.storeError(c, "people_update_failed", err, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Delete a person
// @Description  Responds with the removed record, or null when nothing matched.
// @Tags         people
// @Produce      json
// @Param        id   path      string  true  "person id"
// @Success      200  {object}  models.Person
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /people/{id} [delete]
func (h *Handler) deletePerson(c *gin.Context) {
	p, err := h.services.People.Delete(c.Request.Context(), c.Param("id"), owner(c))
	if err != nil {
		h.storeError(c, "people_delete_failed", err, "id", c.Param("id"))
		return
	}
	if h.opts.LegacyStatus {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, p)
}

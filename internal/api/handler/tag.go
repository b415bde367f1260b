package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lukasmoe/recipebox/internal/auth"
	"github.com/lukasmoe/recipebox/internal/database"
	"github.com/samber/lo"
)

type renameRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListTags returns the user's tags, name-descending. With
// assigned_only=1 only tags attached to at least one of the user's
// recipes are included.
func (h *Handler) ListTags(c *gin.Context) {
	user := auth.CurrentUser(c)

	tags, err := h.db.ListTags(c.Request.Context(), user.ID, boolQuery(c, "assigned_only"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lo.Map(tags, func(t database.Tag, _ int) TagResponse { return toTagResponse(t) }))
}

// CreateTag creates a tag owned by the authenticated user.
func (h *Handler) CreateTag(c *gin.Context) {
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag data"})
		return
	}

	user := auth.CurrentUser(c)
	tag, err := h.db.CreateTag(c.Request.Context(), user.ID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTagResponse(*tag))
}

// UpdateTag renames an owned tag.
func (h *Handler) UpdateTag(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag data"})
		return
	}

	user := auth.CurrentUser(c)
	tag, err := h.db.UpdateTag(c.Request.Context(), user.ID, id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTagResponse(*tag))
}

// DeleteTag removes an owned tag.
func (h *Handler) DeleteTag(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user := auth.CurrentUser(c)

	if err := h.db.DeleteTag(c.Request.Context(), user.ID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

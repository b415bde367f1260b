package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lukasmoe/recipebox/internal/auth"
	"github.com/lukasmoe/recipebox/internal/database"
	"github.com/samber/lo"
)

// ListIngredients returns the user's ingredients, name-descending.
// Supports assigned_only=1 like ListTags.
func (h *Handler) ListIngredients(c *gin.Context) {
	user := auth.CurrentUser(c)

	ingredients, err := h.db.ListIngredients(c.Request.Context(), user.ID, boolQuery(c, "assigned_only"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lo.Map(ingredients, func(i database.Ingredient, _ int) IngredientResponse {
		return toIngredientResponse(i)
	}))
}

// CreateIngredient creates an ingredient owned by the authenticated user.
func (h *Handler) CreateIngredient(c *gin.Context) {
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient data"})
		return
	}

	user := auth.CurrentUser(c)
	ingredient, err := h.db.CreateIngredient(c.Request.Context(), user.ID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toIngredientResponse(*ingredient))
}

// UpdateIngredient renames an owned ingredient.
func (h *Handler) UpdateIngredient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient data"})
		return
	}

	user := auth.CurrentUser(c)
	ingredient, err := h.db.UpdateIngredient(c.Request.Context(), user.ID, id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toIngredientResponse(*ingredient))
}

// DeleteIngredient removes an owned ingredient.
func (h *Handler) DeleteIngredient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user := auth.CurrentUser(c)

	if err := h.db.DeleteIngredient(c.Request.Context(), user.ID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

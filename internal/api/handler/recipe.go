package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lukasmoe/recipebox/internal/auth"
	"github.com/lukasmoe/recipebox/internal/database"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type tagInput struct {
	Name string `json:"name" binding:"required"`
}

type ingredientInput struct {
	Name string `json:"name" binding:"required"`
}

type createRecipeRequest struct {
	Title       string            `json:"title" binding:"required"`
	TimeMinutes int               `json:"time_minutes" binding:"gte=0"`
	Price       string            `json:"price" binding:"required"`
	Description string            `json:"description"`
	Link        string            `json:"link"`
	Tags        []tagInput        `json:"tags" binding:"omitempty,dive"`
	Ingredients []ingredientInput `json:"ingredients" binding:"omitempty,dive"`
}

// updateRecipeRequest distinguishes absent keys (nil, no-op) from
// present-but-empty relation lists (explicit clear).
type updateRecipeRequest struct {
	Title       *string            `json:"title"`
	TimeMinutes *int               `json:"time_minutes" binding:"omitempty,gte=0"`
	Price       *string            `json:"price"`
	Description *string            `json:"description"`
	Link        *string            `json:"link"`
	Tags        *[]tagInput        `json:"tags" binding:"omitempty,dive"`
	Ingredients *[]ingredientInput `json:"ingredients" binding:"omitempty,dive"`
}

// parsePrice validates a decimal price string.
func parsePrice(raw string) (decimal.Decimal, bool) {
	price, err := decimal.NewFromString(raw)
	if err != nil || price.IsNegative() {
		return decimal.Decimal{}, false
	}
	return price, true
}

// ListRecipes returns the authenticated user's recipes, newest first.
// The tags and ingredients query parameters accept comma-separated id
// sets and match recipes carrying at least one of the given ids.
func (h *Handler) ListRecipes(c *gin.Context) {
	user := auth.CurrentUser(c)

	recipes, err := h.db.ListRecipes(c.Request.Context(), user.ID, idListQuery(c, "tags"), idListQuery(c, "ingredients"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, lo.Map(recipes, func(r database.Recipe, _ int) RecipeResponse {
		return h.toRecipeResponse(&r)
	}))
}

// CreateRecipe creates a recipe with embedded tag and ingredient objects
// resolved via create-or-get within the user's namespace.
func (h *Handler) CreateRecipe(c *gin.Context) {
	var req createRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe data"})
		return
	}
	price, ok := parsePrice(req.Price)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
		return
	}

	user := auth.CurrentUser(c)
	recipe := database.Recipe{
		UserID:      user.ID,
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       price,
		Description: req.Description,
		Link:        req.Link,
	}
	tagNames := lo.Map(req.Tags, func(t tagInput, _ int) string { return t.Name })
	ingredientNames := lo.Map(req.Ingredients, func(i ingredientInput, _ int) string { return i.Name })

	if err := h.db.CreateRecipe(c.Request.Context(), &recipe, tagNames, ingredientNames); err != nil {
		respondError(c, err)
		return
	}

	created, err := h.db.GetRecipe(c.Request.Context(), user.ID, recipe.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.toRecipeResponse(created))
}

// GetRecipe returns a single recipe owned by the authenticated user.
func (h *Handler) GetRecipe(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user := auth.CurrentUser(c)

	recipe, err := h.db.GetRecipe(c.Request.Context(), user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toRecipeResponse(recipe))
}

// UpdateRecipe applies a partial update. PUT and PATCH both route here;
// the update is always partial.
func (h *Handler) UpdateRecipe(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe data"})
		return
	}

	update := database.RecipeUpdate{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Description: req.Description,
		Link:        req.Link,
	}
	if req.Price != nil {
		price, ok := parsePrice(*req.Price)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
			return
		}
		update.Price = &price
	}
	if req.Tags != nil {
		names := lo.Map(*req.Tags, func(t tagInput, _ int) string { return t.Name })
		update.Tags = &names
	}
	if req.Ingredients != nil {
		names := lo.Map(*req.Ingredients, func(i ingredientInput, _ int) string { return i.Name })
		update.Ingredients = &names
	}

	user := auth.CurrentUser(c)
	recipe, err := h.db.UpdateRecipe(c.Request.Context(), user.ID, id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toRecipeResponse(recipe))
}

// DeleteRecipe removes a recipe and its stored image file.
func (h *Handler) DeleteRecipe(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user := auth.CurrentUser(c)

	imagePath, err := h.db.DeleteRecipe(c.Request.Context(), user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.images.Remove(imagePath)
	c.Status(http.StatusNoContent)
}

// UploadRecipeImage stores a multipart image upload on an owned recipe.
func (h *Handler) UploadRecipeImage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user := auth.CurrentUser(c)

	// The recipe must exist and belong to the user before anything is
	// written to disk.
	if _, err := h.db.GetRecipe(c.Request.Context(), user.ID, id); err != nil {
		respondError(c, err)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	defer file.Close() //nolint: errcheck

	path, err := h.images.Save(file, fileHeader.Filename)
	if err != nil {
		respondError(c, err)
		return
	}

	previous, err := h.db.SetRecipeImage(c.Request.Context(), user.ID, id, path)
	if err != nil {
		h.images.Remove(path)
		respondError(c, err)
		return
	}
	h.images.Remove(previous)

	c.JSON(http.StatusOK, gin.H{"image": h.images.URL(h.serverURL, path)})
}

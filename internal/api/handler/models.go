package handler

import (
	"github.com/lukasmoe/recipebox/internal/database"
	"github.com/samber/lo"
)

// UserResponse is the public representation of a user account. The
// password hash is never part of any response.
type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TagResponse is the public representation of a tag.
type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// IngredientResponse is the public representation of an ingredient.
type IngredientResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// RecipeResponse is the public representation of a recipe, with its tag
// and ingredient relations embedded as objects.
type RecipeResponse struct {
	ID          uint                 `json:"id"`
	Title       string               `json:"title"`
	TimeMinutes int                  `json:"time_minutes"`
	Price       string               `json:"price"`
	Description string               `json:"description"`
	Link        string               `json:"link"`
	Image       *string              `json:"image"`
	Tags        []TagResponse        `json:"tags"`
	Ingredients []IngredientResponse `json:"ingredients"`
}

func toUserResponse(u *database.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

func toTagResponse(t database.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name}
}

func toIngredientResponse(i database.Ingredient) IngredientResponse {
	return IngredientResponse{ID: i.ID, Name: i.Name}
}

func (h *Handler) toRecipeResponse(r *database.Recipe) RecipeResponse {
	resp := RecipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price.StringFixed(2),
		Description: r.Description,
		Link:        r.Link,
		Tags:        lo.Map(r.Tags, func(t database.Tag, _ int) TagResponse { return toTagResponse(t) }),
		Ingredients: lo.Map(r.Ingredients, func(i database.Ingredient, _ int) IngredientResponse { return toIngredientResponse(i) }),
	}
	if r.Image != "" {
		url := h.images.URL(h.serverURL, r.Image)
		resp.Image = &url
	}
	return resp
}

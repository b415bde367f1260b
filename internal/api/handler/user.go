package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lukasmoe/recipebox/internal/auth"
	"github.com/lukasmoe/recipebox/internal/database"
)

type createUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=5"`
	Name     string `json:"name"`
}

type tokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
}

type updateMeRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password" binding:"omitempty,min=5"`
}

// CreateUser registers a new account.
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user data"})
		return
	}

	user, err := h.db.CreateUser(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user))
}

// CreateToken exchanges credentials for an opaque bearer token. Every
// failure mode yields the same generic 400.
func (h *Handler) CreateToken(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": auth.ErrInvalidCredentials.Error()})
			return
		}

		token, err := authService.IssueToken(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token.Key})
	}
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, toUserResponse(auth.CurrentUser(c)))
}

// UpdateMe applies a partial profile update. Absent fields are no-ops.
func (h *Handler) UpdateMe(c *gin.Context) {
	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user data"})
		return
	}

	user := auth.CurrentUser(c)
	updated, err := h.db.UpdateUser(c.Request.Context(), user.ID, database.UserUpdate{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(updated))
}

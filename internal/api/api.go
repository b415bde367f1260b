package api

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/lukasmoe/recipebox/internal/api/handler"
	"github.com/lukasmoe/recipebox/internal/auth"
	"github.com/lukasmoe/recipebox/internal/config"
	"github.com/lukasmoe/recipebox/internal/database"
	"github.com/lukasmoe/recipebox/internal/storage"
)

// Server is the HTTP API server.
type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	db        *database.Client
	auth      *auth.Service
	images    *storage.ImageStore
}

// New creates a new API server.
func New(cfg *config.Config, db *database.Client, authService *auth.Service, images *storage.ImageStore) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	s := &Server{
		cfg:       cfg,
		ginEngine: gin.Default(),
		db:        db,
		auth:      authService,
		images:    images,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.ginEngine.HandleMethodNotAllowed = true
	s.ginEngine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})
	s.ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))

	// Uploaded images are served straight from the media directory.
	s.ginEngine.Static("/media", s.images.Root())

	h := handler.New(s.db, s.images, s.cfg.ServerURL)

	api := s.ginEngine.Group("/api")

	user := api.Group("/user")
	user.POST("/", h.CreateUser)
	user.POST("/token/", h.CreateToken(s.auth))

	me := user.Group("/me", s.auth.RequireAuth())
	me.GET("/", h.Me)
	me.PATCH("/", h.UpdateMe)

	recipe := api.Group("/recipe", s.auth.RequireAuth())

	recipe.GET("/recipes/", h.ListRecipes)
	recipe.POST("/recipes/", h.CreateRecipe)
	recipe.GET("/recipes/:id/", h.GetRecipe)
	// PUT and PATCH share the partial-update handler on purpose: absent
	// keys are no-ops, present-but-empty relation lists are explicit clears.
	recipe.PUT("/recipes/:id/", h.UpdateRecipe)
	recipe.PATCH("/recipes/:id/", h.UpdateRecipe)
	recipe.DELETE("/recipes/:id/", h.DeleteRecipe)
	recipe.POST("/recipes/:id/upload-image/", h.UploadRecipeImage)

	recipe.GET("/tags/", h.ListTags)
	recipe.POST("/tags/", h.CreateTag)
	recipe.PATCH("/tags/:id/", h.UpdateTag)
	recipe.DELETE("/tags/:id/", h.DeleteTag)

	recipe.GET("/ingredients/", h.ListIngredients)
	recipe.POST("/ingredients/", h.CreateIngredient)
	recipe.PATCH("/ingredients/:id/", h.UpdateIngredient)
	recipe.DELETE("/ingredients/:id/", h.DeleteIngredient)
}

// Run starts the server.
func (s *Server) Run() error {
	return s.ginEngine.Run(s.cfg.Listen)
}

// Handler returns the configured gin engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}

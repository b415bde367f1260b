package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lukasmoe/recipebox/internal/auth"
	"github.com/lukasmoe/recipebox/internal/database"
	"github.com/lukasmoe/recipebox/internal/storage"
)

// Handler holds the dependencies for the API handlers.
type Handler struct {
	db        *database.Client
	images    *storage.ImageStore
	serverURL string
}

// New creates a new API handler.
func New(db *database.Client, images *storage.ImageStore, serverURL string) *Handler {
	return &Handler{
		db:        db,
		images:    images,
		serverURL: serverURL,
	}
}

// respondError maps domain errors to HTTP responses. Anything that is not
// a known domain outcome becomes a generic server error.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, database.ErrEmailRequired),
		errors.Is(err, database.ErrEmailExists),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, storage.ErrInvalidImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// idParam parses the numeric :id path parameter.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return uint(id), true
}

// idListQuery parses a comma-separated id list query parameter, e.g.
// tags=1,2,3. Malformed entries are skipped.
func idListQuery(c *gin.Context, name string) []uint {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}

// boolQuery interprets a query parameter as a truthy flag (1, true).
func boolQuery(c *gin.Context, name string) bool {
	switch strings.ToLower(c.Query(name)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lukasmoe/recipebox/internal/database"
)

// UserContextKey is the gin context key under which the authenticated
// user is stored.
const UserContextKey = "user"

// RequireAuth resolves the bearer token from the Authorization header and
// stores the matching user in the gin context. Requests without a valid
// token are rejected with 401.
func (s *Service) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := tokenKey(c.GetHeader("Authorization"))
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		user, err := s.db.GetUserByTokenKey(c.Request.Context(), key)
		if err != nil || !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(UserContextKey, user)
	}
}

// CurrentUser returns the authenticated user stored by RequireAuth.
func CurrentUser(c *gin.Context) *database.User {
	return c.MustGet(UserContextKey).(*database.User)
}

// tokenKey extracts the opaque key from an Authorization header value.
// Both "Bearer <key>" and "Token <key>" schemes are accepted.
func tokenKey(header string) string {
	scheme, key, found := strings.Cut(header, " ")
	if !found {
		return ""
	}
	switch strings.ToLower(scheme) {
	case "bearer", "token":
		return strings.TrimSpace(key)
	}
	return ""
}

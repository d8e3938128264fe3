package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/pkg/jwt"
)

const userIDKey = "userID"

// OptionalAuth parses a Bearer token when one is present and stores the
// authenticated user id in the context. Requests without a token proceed as
// guests; a malformed or expired token is rejected outright rather than
// silently downgraded to guest.
func OptionalAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := manager.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// RequireAuth rejects guests.
func RequireAuth(manager *jwt.Manager) gin.HandlerFunc {
	optional := OptionalAuth(manager)
	return func(c *gin.Context) {
		optional(c)
		if c.IsAborted() {
			return
		}
		if _, ok := CurrentUserID(c); !ok {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
		}
	}
}

// CurrentUserID returns the authenticated user id, if any.
func CurrentUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// CurrentUserIDPtr returns the user id as a nullable pointer; nil means
// guest.
func CurrentUserIDPtr(c *gin.Context) *int64 {
	if id, ok := CurrentUserID(c); ok {
		return &id
	}
	return nil
}

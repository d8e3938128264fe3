package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/domains/rbac"
	"bookcatalog-backend/internal/shared/response"
)

// RequirePermission guards a route group with the access gate. Guests reach
// the gate as a nil actor; denial is a hard 403, never an empty result.
func RequirePermission(gate *rbac.Gate, p rbac.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := gate.CheckAccess(c.Request.Context(), CurrentUserIDPtr(c), p)
		if err != nil {
			log.Error().Err(err).
				Str("request_id", c.GetString("request_id")).
				Str("permission", p.String()).
				Msg("permission check failed")
			response.InternalServerError(c, "permission check failed")
			c.Abort()
			return
		}

		if !allowed {
			response.Forbidden(c, "you do not have permission to perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

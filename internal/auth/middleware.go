package auth

import (
	"strings"

	"codeberg.org/colegiospro/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// requires an admin bearer token or the X-Admin-Key header
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c.GetHeader(HeaderAdminKey), bearerToken(c)) {
			errors.Unauthorized(c, "admin authentication required")
			return
		}

		c.Set("is_admin", true)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

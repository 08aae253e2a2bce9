package middleware

import (
	"github.com/gin-gonic/gin"

	"books-api/internal/shared/response"
	"books-api/pkg/jwt"
)

// AdminMiddleware checks if caller has admin role (chạy sau AuthMiddleware)
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(RoleKey) != jwt.RoleAdmin {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}

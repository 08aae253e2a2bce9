package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"books-api/internal/shared/response"
	"books-api/pkg/jwt"
)

// Context keys set bởi AuthMiddleware
const (
	SubjectKey = "subject"
	RoleKey    = "role"
)

// AuthMiddleware - xác thực Bearer JWT, set subject và role vào context
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		// 2. Extract token từ "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		// 3. Verify và parse JWT
		claims, err := manager.ValidateToken(parts[1])
		if err != nil {
			log.Debug().
				Err(err).
				Str("request_id", c.GetString(RequestIDKey)).
				Msg("rejected bearer token")
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		c.Set(SubjectKey, claims.Subject)
		c.Set(RoleKey, claims.Role)

		c.Next()
	}
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plushhub/internal/domain"
	"plushhub/internal/pkg/response"
)

// RequireRole gates a route on the role claim Auth put into the context.
// Must run after Auth; an unauthenticated request has no role and is
// rejected outright.
func RequireRole(required domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := domain.UserRole(c.GetString("role"))
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		if role != required {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}

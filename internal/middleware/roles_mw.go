package middleware

import (
	"net/http"

	"paroquia_connect/internal/service"

	"github.com/gin-gonic/gin"
)

// RequireAdmin lets through only administrators. It must run after LoadSession.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": service.ErrUnauthenticated.Error()})
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "acesso restrito a administradores"})
			return
		}
		c.Next()
	}
}

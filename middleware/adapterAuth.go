package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"frontdesk/utils"
)

// AdapterAuthMiddleware authenticates channel adapters via their tenant-scoped
// JWT and puts the tenant id into the request context. Handlers must take the
// tenant id from here, never from the request body.
func AdapterAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		tenantID, err := utils.TenantIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("tenantID", tenantID)
		c.Next()
	}
}

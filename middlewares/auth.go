// file: middlewares/auth.go
package middlewares

import (
	"strings"

	"github.com/JB-05/gen-201-mbc/utils"
	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware guards the dashboard routes with a bearer token.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			utils.Error(c, 4001, "Authorization header is missing")
			c.Abort()
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			utils.Error(c, 4002, "Authorization header format must be 'Bearer <token>'")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			utils.Error(c, 4003, "Invalid or expired token")
			c.Abort()
			return
		}
		c.Set("admin_id", claims.AdminID)
		c.Set("admin_email", claims.Email)
		c.Next()
	}
}

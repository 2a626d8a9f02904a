package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"canteen/utils"
)

// WSAuthMiddleware accepts the token from either the query string or the
// Authorization header — browser websocket clients cannot set headers.
func WSAuthMiddleware(tm *utils.TokenManager, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			userID uint
			role   string
			err    error
		)

		if t := c.Query("token"); t != "" {
			userID, role, err = tm.AuthorizeToken(t)
		} else {
			h := c.GetHeader("Authorization")
			if h != "" && strings.HasPrefix(h, "Bearer ") {
				userID, role, err = tm.Authorize(h)
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing token"})
				return
			}
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			return
		}

		c.Set("userId", userID)
		c.Set("role", role)

		if len(requiredRoles) > 0 {
			allowed := false
			for _, r := range requiredRoles {
				if role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
				return
			}
		}

		c.Next()
	}
}

package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"canteen/pkg/apperr"
	"canteen/utils"
)

// AuthMiddleware verifies the bearer token and (if given) enforces roles.
// The TokenManager is injected once; auth and validation failures stop here
// and never reach storage.
func AuthMiddleware(tm *utils.TokenManager, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, err := tm.Authorize(c.GetHeader("Authorization"))
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, apperr.ErrMissingToken) {
				msg = "missing or invalid token"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg})
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

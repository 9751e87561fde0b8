package middleware

import (
	"net/http"

	"chairbid/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through only when the actor holds one of roles.
// It must run after JWTAuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
			return
		}
		if actor.Role == "" {
			utils.JSONError(c, http.StatusForbidden, "Profile required", "create your profile with PUT /api/me first")
			return
		}
		if !allowed[actor.Role] {
			utils.JSONError(c, http.StatusForbidden, "Forbidden", "role "+actor.Role+" cannot perform this action")
			return
		}
		c.Next()
	}
}

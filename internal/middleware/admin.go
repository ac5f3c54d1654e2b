package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redonshkr/gov-content-hub/internal/common"
	"github.com/redonshkr/gov-content-hub/internal/domain"
)

// RequireRoles rejects requests whose actor holds none of roles
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := GetActor(c)
		if actor == nil {
			common.V2ErrorResponse(c, http.StatusUnauthorized, "sign-in required", nil)
			c.Abort()
			return
		}
		if !domain.Authorize(actor.Roles, roles) {
			common.V2ErrorResponse(c, http.StatusForbidden, "insufficient role", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects non-admin actors
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(domain.AdminRoles...)
}

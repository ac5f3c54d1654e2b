package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redonshkr/gov-content-hub/internal/common"
	"github.com/redonshkr/gov-content-hub/internal/domain"
	"github.com/redonshkr/gov-content-hub/pkg/jwt"
)

const actorKey = "actor"

// ActorResolver maps a verified identity to a workflow actor
type ActorResolver interface {
	Resolve(ctx context.Context, email, name, picture string) (*domain.Actor, error)
}

// JWTAuth verifies the bearer token, resolves the actor and stores it in the context
func JWTAuth(jwtManager *jwt.Manager, resolver ActorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			common.ErrorResponse(c, http.StatusUnauthorized, "Missing authorization header", nil)
			c.Abort()
			return
		}

		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, http.StatusUnauthorized, "Token expired", err)
			} else {
				common.ErrorResponse(c, http.StatusUnauthorized, "Invalid token", err)
			}
			c.Abort()
			return
		}

		actor, err := resolver.Resolve(c.Request.Context(), claims.Email, claims.Name, claims.Picture)
		if err != nil {
			common.WorkflowErrorResponse(c, err)
			c.Abort()
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// bearerToken reads the Authorization header. Browsers cannot set headers on
// websocket upgrades, so those may pass ?token= instead.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
			if token := c.Query("token"); token != "" {
				return token, true
			}
		}
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// GetActor returns the resolved actor, or nil when the request is anonymous
func GetActor(c *gin.Context) *domain.Actor {
	v, exists := c.Get(actorKey)
	if !exists {
		return nil
	}
	actor, _ := v.(*domain.Actor)
	return actor
}

// SetActor stores actor in the context
func SetActor(c *gin.Context, actor *domain.Actor) {
	c.Set(actorKey, actor)
}

// GetUserID returns the actor id, or "" when anonymous
func GetUserID(c *gin.Context) string {
	if actor := GetActor(c); actor != nil {
		return actor.ID
	}
	return ""
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"chairbid/models"
	"chairbid/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ctxUserID = "userID"
	ctxActor  = "actor"
)

// ProfileLoader resolves the profile of an authenticated subject.
type ProfileLoader interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
}

// JWTAuthMiddleware verifies the bearer token issued by the auth provider and
// loads the caller's profile as the request actor. A caller without a profile
// is authenticated but has no role until PUT /api/me creates one.
func JWTAuthMiddleware(profiles ProfileLoader, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "missing bearer token")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := utils.ExtractIDFromToken(tokenString, secret)
		if err != nil || userID == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "invalid token")
			return
		}
		c.Set(ctxUserID, userID)

		actor := models.Actor{ID: userID}
		profile, err := profiles.GetProfile(c.Request.Context(), userID)
		if err == nil {
			actor = models.ActorFromProfile(*profile)
		} else if !isNotFound(err) {
			utils.GetLogger().Error("Failed to load profile", zap.String("user_id", userID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to load profile", "")
			return
		}
		c.Set(ctxActor, actor)
		c.Next()
	}
}

func isNotFound(err error) bool {
	var se interface{ Status() int }
	return errors.As(err, &se) && se.Status() == http.StatusNotFound
}

// CurrentActor returns the actor set by JWTAuthMiddleware.
func CurrentActor(c *gin.Context) (models.Actor, bool) {
	v, exists := c.Get(ctxActor)
	if !exists {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}

// CurrentUserID returns the authenticated subject.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

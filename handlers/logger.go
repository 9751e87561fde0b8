package handlers

import (
	"chairbid/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger returns the request logger installed by middleware.RequestLogger,
// tagged with the caller when one is authenticated.
func getLogger(c *gin.Context) *zap.Logger {
	logger := utils.GetLogger()
	if l, ok := c.Value("logger").(*zap.Logger); ok {
		logger = l
	}
	if id := c.GetString("userID"); id != "" {
		logger = logger.With(zap.String("user_id", id))
	}
	return logger
}

package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every error reply. Code is set for domain
// errors (e.g. "slot_unavailable") so clients need not parse Details.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler turns a panic in a later handler into a 500 reply.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", rec), zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
				JSONError(c, http.StatusInternalServerError, "Internal Server Error",
					"An unexpected error occurred. Please try again later.")
			}
		}()
		c.Next()
	}
}

// JSONError aborts the request with an ErrorResponse.
func JSONError(c *gin.Context, status int, message string, details string) {
	JSONCodeError(c, status, "", message, details)
}

// JSONCodeError aborts the request with an ErrorResponse carrying a domain code.
// Server errors are logged at error level, client errors at debug.
func JSONCodeError(c *gin.Context, status int, code, message, details string) {
	fields := []zap.Field{zap.Int("status", status), zap.String("path", c.Request.URL.Path)}
	if code != "" {
		fields = append(fields, zap.String("code", code))
	}
	if details != "" {
		fields = append(fields, zap.String("details", details))
	}
	if status >= http.StatusInternalServerError {
		GetLogger().Error(message, fields...)
	} else {
		GetLogger().Debug(message, fields...)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message, Code: code, Details: details})
}

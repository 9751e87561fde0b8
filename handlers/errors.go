package handlers

import (
	"errors"
	"net/http"

	"chairbid/database/repository"
	"chairbid/middleware"
	"chairbid/models"
	"chairbid/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusError is implemented by the domain errors of every service package.
type statusError interface {
	error
	Status() int
	ErrorCode() string
}

// respondError maps a service error onto the JSON error envelope.
func respondError(c *gin.Context, err error) {
	var se statusError
	switch {
	case errors.As(err, &se):
		utils.JSONCodeError(c, se.Status(), se.ErrorCode(), http.StatusText(se.Status()), se.Error())
	case errors.Is(err, repository.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, repository.ErrConflict):
		utils.JSONError(c, http.StatusConflict, "Conflict", err.Error())
	default:
		getLogger(c).Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
}

// requireActor returns the authenticated actor or aborts with 401.
func requireActor(c *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.CurrentActor(c)
	if !ok || actor.ID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return models.Actor{}, false
	}
	return actor, true
}

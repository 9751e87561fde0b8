package handlers

import (
	"net/http"

	"chairbid/middleware"
	"chairbid/models"
	"chairbid/services/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	Service catalog.CatalogService
}

func NewProfileHandler(svc catalog.CatalogService) *ProfileHandler {
	return &ProfileHandler{Service: svc}
}

func (h *ProfileHandler) GetMe(c *gin.Context) {
	profile, err := h.Service.GetProfile(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpsertMe(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	var in models.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	profile, err := h.Service.UpsertProfile(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("Profile saved", zap.String("user_id", userID), zap.String("role", profile.Role))
	c.JSON(http.StatusOK, profile)
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"chairbid/middleware"
	"chairbid/models"
	"chairbid/services/catalog"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	Service catalog.CatalogService
}

func NewCatalogHandler(svc catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{Service: svc}
}

func (h *CatalogHandler) CreateTenant(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var in catalog.TenantInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	tenant, err := h.Service.CreateTenant(c.Request.Context(), actor, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tenant)
}

func (h *CatalogHandler) GetTenant(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentTenant(c))
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.Service.ListServices(c.Request.Context(), middleware.CurrentTenant(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var in models.ServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	svc, err := h.Service.CreateService(c.Request.Context(), actor, middleware.CurrentTenant(c).ID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *CatalogHandler) ListStaff(c *gin.Context) {
	staff, err := h.Service.ListStaff(c.Request.Context(), middleware.CurrentTenant(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": staff})
}

// ListSlots supports ?provider=&service=&status=&from=&to=&auction=true.
func (h *CatalogHandler) ListSlots(c *gin.Context) {
	filter := models.SlotFilter{
		TenantID:   middleware.CurrentTenant(c).ID,
		ProviderID: c.Query("provider"),
		ServiceID:  c.Query("service"),
		Status:     c.Query("status"),
	}
	for param, dst := range map[string]*time.Time{"from": &filter.From, "to": &filter.To} {
		if raw := c.Query(param); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				badRequest(c, err)
				return
			}
			*dst = t
		}
	}
	if raw := c.Query("auction"); raw != "" {
		auctionOnly, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, err)
			return
		}
		filter.AuctionOnly = auctionOnly
	}

	slots, err := h.Service.ListSlots(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

func (h *CatalogHandler) CreateSlots(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var in struct {
		Slots []models.SlotInput `json:"slots" binding:"required,dive"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	slots, err := h.Service.CreateSlots(c.Request.Context(), actor, middleware.CurrentTenant(c).ID, in.Slots)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slots": slots})
}

func (h *CatalogHandler) GetSlot(c *gin.Context) {
	slot, err := h.Service.GetSlot(c.Request.Context(), c.Param("slotID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

package middleware

import (
	"context"
	"net/http"

	"chairbid/models"
	"chairbid/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ctxTenant = "tenant"

// TenantResolver looks a tenant up by its URL slug.
type TenantResolver interface {
	GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error)
}

// TenantMiddleware resolves the :slug path parameter into the request tenant.
func TenantMiddleware(tenants TenantResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		tenant, err := tenants.GetTenantBySlug(c.Request.Context(), slug)
		if err != nil {
			if isNotFound(err) {
				utils.JSONError(c, http.StatusNotFound, "Tenant not found", slug)
				return
			}
			utils.GetLogger().Error("Tenant lookup failed", zap.String("slug", slug), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Tenant lookup failed", "")
			return
		}
		c.Set(ctxTenant, tenant)
		c.Next()
	}
}

// CurrentTenant returns the tenant set by TenantMiddleware.
func CurrentTenant(c *gin.Context) *models.Tenant {
	v, exists := c.Get(ctxTenant)
	if !exists {
		return nil
	}
	tenant, _ := v.(*models.Tenant)
	return tenant
}

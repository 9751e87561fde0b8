package catalog

import (
	"context"

	catalogRepo "chairbid/database/repository/catalog"
	profileRepo "chairbid/database/repository/profile"
	slotRepo "chairbid/database/repository/slot"
	tenantRepo "chairbid/database/repository/tenant"
	"chairbid/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CatalogService serves tenants, their services, staff and slots, and the
// profiles of authenticated users.
type CatalogService interface {
	CreateTenant(ctx context.Context, actor models.Actor, in TenantInput) (*models.Tenant, error)
	GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	ListServices(ctx context.Context, tenantID string) ([]models.Service, error)
	CreateService(ctx context.Context, actor models.Actor, tenantID string, in models.ServiceInput) (*models.Service, error)
	ListStaff(ctx context.Context, tenantID string) ([]models.Profile, error)
	ListSlots(ctx context.Context, filter models.SlotFilter) ([]models.Slot, error)
	GetSlot(ctx context.Context, slotID string) (*models.Slot, error)
	CreateSlots(ctx context.Context, actor models.Actor, tenantID string, in []models.SlotInput) ([]models.Slot, error)
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, userID string, in models.ProfileInput) (*models.Profile, error)
}

// TenantInput is the payload for registering a business.
type TenantInput struct {
	Slug     string `json:"slug" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Kind     string `json:"kind" binding:"omitempty,oneof=barbershop tattoo_studio other"`
	Timezone string `json:"timezone"`
}

// DefaultCatalogService implements CatalogService. Cache is optional; without
// it every lookup goes to the store.
type DefaultCatalogService struct {
	Tenants  tenantRepo.TenantRepository
	Services catalogRepo.ServiceRepository
	Profiles profileRepo.ProfileRepository
	Slots    slotRepo.SlotRepository
	Cache    *redis.Client
	Logger   *zap.Logger
}

package tenantRepo

import (
	"context"

	"chairbid/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	GetByID(ctx context.Context, id string) (*models.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tenant, error)
}

type mongoTenantRepo struct {
	coll *mongo.Collection
}

// NewMongoTenantRepo constructs a new MongoDB TenantRepository.
func NewMongoTenantRepo(db *mongo.Database) TenantRepository {
	return &mongoTenantRepo{coll: db.Collection("tenants")}
}

package tenantRepo

import (
	"context"
	"fmt"
	"time"

	"chairbid/database/repository"
	"chairbid/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

func (r *mongoTenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if tenant.ID == "" {
		tenant.ID = uuid.New().String()
	}
	if tenant.CreatedAt.IsZero() {
		tenant.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, tenant); err != nil {
		if repository.IsDuplicateKey(err) {
			return fmt.Errorf("tenant slug %q: %w", tenant.Slug, repository.ErrConflict)
		}
		return fmt.Errorf("error creating tenant: %w", err)
	}
	return nil
}

func (r *mongoTenantRepo) GetByID(ctx context.Context, id string) (*models.Tenant, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *mongoTenantRepo) GetBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *mongoTenantRepo) findOne(ctx context.Context, filter bson.M) (*models.Tenant, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tenant models.Tenant
	if err := r.coll.FindOne(ctx, filter).Decode(&tenant); err != nil {
		return nil, repository.Translate(err)
	}
	return &tenant, nil
}

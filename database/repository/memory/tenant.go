package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"chairbid/database/repository"
	"chairbid/models"

	"github.com/google/uuid"
)

type TenantRepo struct {
	mu     sync.RWMutex
	byID   map[string]models.Tenant
	bySlug map[string]string
}

func NewTenantRepo() *TenantRepo {
	return &TenantRepo{
		byID:   make(map[string]models.Tenant),
		bySlug: make(map[string]string),
	}
}

func (r *TenantRepo) Create(_ context.Context, tenant *models.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.bySlug[tenant.Slug]; taken {
		return fmt.Errorf("tenant slug %q: %w", tenant.Slug, repository.ErrConflict)
	}
	if tenant.ID == "" {
		tenant.ID = uuid.New().String()
	}
	if tenant.CreatedAt.IsZero() {
		tenant.CreatedAt = time.Now().UTC()
	}
	r.byID[tenant.ID] = *tenant
	r.bySlug[tenant.Slug] = tenant.ID
	return nil
}

func (r *TenantRepo) GetByID(_ context.Context, id string) (*models.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *TenantRepo) GetBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	r.mu.RLock()
	id, ok := r.bySlug[slug]
	r.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

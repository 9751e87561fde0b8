package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"chairbid/database/repository"
	"chairbid/models"
	"chairbid/utils"

	"go.uber.org/zap"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// CreateTenant registers a business and attaches the calling owner to it.
func (s *DefaultCatalogService) CreateTenant(ctx context.Context, actor models.Actor, in TenantInput) (*models.Tenant, error) {
	if actor.Role != models.RoleOwner {
		return nil, newCatalogError(CodeForbidden, "only owners can register a business")
	}
	if actor.TenantID != "" {
		return nil, newCatalogError(CodeConflict, "you already own a business")
	}
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if !slugPattern.MatchString(slug) {
		return nil, newCatalogError(CodeInvalidInput, "slug must be lowercase letters, digits and dashes")
	}
	if in.Timezone != "" {
		if _, err := time.LoadLocation(in.Timezone); err != nil {
			return nil, newCatalogError(CodeInvalidInput, "unknown timezone %q", in.Timezone)
		}
	}

	tenant := &models.Tenant{
		Slug:     slug,
		Name:     in.Name,
		Kind:     in.Kind,
		Timezone: in.Timezone,
	}
	if tenant.Kind == "" {
		tenant.Kind = models.TenantKindOther
	}
	if tenant.Timezone == "" {
		tenant.Timezone = "UTC"
	}
	if err := s.Tenants.Create(ctx, tenant); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, newCatalogError(CodeConflict, "slug %q is taken", slug)
		}
		return nil, fmt.Errorf("CreateTenant: %w", err)
	}

	profile, err := s.Profiles.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("CreateTenant: load owner profile: %w", err)
	}
	profile.TenantID = tenant.ID
	profile.UpdatedAt = time.Now().UTC()
	if err := s.Profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("CreateTenant: attach owner: %w", err)
	}
	s.evict(ctx, utils.ProfileCachePrefix+actor.ID)

	s.Logger.Info("Tenant created", zap.String("tenant_id", tenant.ID), zap.String("slug", slug))
	return tenant, nil
}

// GetTenantBySlug resolves a tenant, served from Redis when cached.
func (s *DefaultCatalogService) GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	key := utils.TenantCachePrefix + slug
	var tenant models.Tenant
	if s.cached(ctx, key, &tenant) {
		return &tenant, nil
	}

	found, err := s.Tenants.GetBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newCatalogError(CodeNotFound, "tenant %q not found", slug)
	}
	if err != nil {
		return nil, fmt.Errorf("GetTenantBySlug: %w", err)
	}
	s.store(ctx, key, found, utils.TenantCacheTTL)
	return found, nil
}

func (s *DefaultCatalogService) ListServices(ctx context.Context, tenantID string) ([]models.Service, error) {
	services, err := s.Services.ListByTenant(ctx, tenantID, true)
	if err != nil {
		return nil, fmt.Errorf("ListServices: %w", err)
	}
	return services, nil
}

func (s *DefaultCatalogService) CreateService(ctx context.Context, actor models.Actor, tenantID string, in models.ServiceInput) (*models.Service, error) {
	if actor.Role != models.RoleOwner || actor.TenantID != tenantID {
		return nil, newCatalogError(CodeForbidden, "only the owner can add services")
	}
	if in.Price.IsNegative() {
		return nil, newCatalogError(CodeInvalidInput, "price cannot be negative")
	}

	svc := &models.Service{
		TenantID:        tenantID,
		Name:            in.Name,
		Description:     in.Description,
		DurationMinutes: in.DurationMinutes,
		Price:           in.Price,
		Active:          true,
	}
	if err := s.Services.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("CreateService: %w", err)
	}
	return svc, nil
}

func (s *DefaultCatalogService) ListStaff(ctx context.Context, tenantID string) ([]models.Profile, error) {
	staff, err := s.Profiles.ListStaff(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("ListStaff: %w", err)
	}
	return staff, nil
}

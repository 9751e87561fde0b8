package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chairbid/database/repository"
	"chairbid/models"
	"chairbid/utils"
)

// GetProfile loads a user's profile, served from Redis when cached.
func (s *DefaultCatalogService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	key := utils.ProfileCachePrefix + userID
	var profile models.Profile
	if s.cached(ctx, key, &profile) {
		return &profile, nil
	}

	found, err := s.Profiles.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newCatalogError(CodeNotFound, "profile not found")
	}
	if err != nil {
		return nil, fmt.Errorf("GetProfile: %w", err)
	}
	s.store(ctx, key, found, utils.ProfileCacheTTL)
	return found, nil
}

// UpsertProfile creates or replaces the caller's profile. Providers must name
// the tenant they work for; owners attach to one through CreateTenant.
func (s *DefaultCatalogService) UpsertProfile(ctx context.Context, userID string, in models.ProfileInput) (*models.Profile, error) {
	existing, err := s.Profiles.GetByID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("UpsertProfile: %w", err)
	}

	now := time.Now().UTC()
	profile := &models.Profile{
		ID:          userID,
		Role:        in.Role,
		DisplayName: in.DisplayName,
		Bio:         in.Bio,
		AvatarURL:   in.AvatarURL,
		FCMToken:    in.FCMToken,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if existing != nil {
		profile.CreatedAt = existing.CreatedAt
		if profile.FCMToken == "" {
			profile.FCMToken = existing.FCMToken
		}
		if existing.Role == in.Role {
			profile.TenantID = existing.TenantID
		}
	}

	switch {
	case in.Role == models.RoleCustomer:
		profile.TenantID = ""
	case in.TenantSlug != "":
		tenant, err := s.GetTenantBySlug(ctx, in.TenantSlug)
		if err != nil {
			return nil, err
		}
		if in.Role == models.RoleOwner && profile.TenantID != tenant.ID {
			return nil, newCatalogError(CodeForbidden, "owners attach to a business by registering it")
		}
		profile.TenantID = tenant.ID
	case in.Role == models.RoleProvider && profile.TenantID == "":
		return nil, newCatalogError(CodeInvalidInput, "providers must name their business")
	}

	if err := s.Profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("UpsertProfile: %w", err)
	}
	s.evict(ctx, utils.ProfileCachePrefix+userID)
	return profile, nil
}

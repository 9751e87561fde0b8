package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"chairbid/database/repository"
	"chairbid/models"
)

type ProfileRepo struct {
	mu   sync.RWMutex
	byID map[string]models.Profile
}

func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{byID: make(map[string]models.Profile)}
}

func (r *ProfileRepo) Upsert(_ context.Context, profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	r.byID[profile.ID] = *profile
	return nil
}

func (r *ProfileRepo) GetByID(_ context.Context, id string) (*models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *ProfileRepo) ListStaff(_ context.Context, tenantID string) ([]models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Profile{}
	for _, p := range r.byID {
		if p.TenantID == tenantID && p.IsStaff() {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

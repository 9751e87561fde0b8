package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"chairbid/database/repository"
	"chairbid/models"

	"github.com/google/uuid"
)

type ServiceRepo struct {
	mu   sync.RWMutex
	byID map[string]models.Service
}

func NewServiceRepo() *ServiceRepo {
	return &ServiceRepo{byID: make(map[string]models.Service)}
}

func (r *ServiceRepo) Create(_ context.Context, svc *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if svc.ID == "" {
		svc.ID = uuid.New().String()
	}
	if svc.CreatedAt.IsZero() {
		svc.CreatedAt = time.Now().UTC()
	}
	r.byID[svc.ID] = *svc
	return nil
}

func (r *ServiceRepo) GetByID(_ context.Context, id string) (*models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	svc, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &svc, nil
}

func (r *ServiceRepo) ListByTenant(_ context.Context, tenantID string, activeOnly bool) ([]models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Service{}
	for _, svc := range r.byID {
		if svc.TenantID != tenantID || (activeOnly && !svc.Active) {
			continue
		}
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

package catalog

import (
	"context"
	"errors"
	"fmt"

	"chairbid/database/repository"
	"chairbid/models"

	"go.uber.org/zap"
)

func (s *DefaultCatalogService) ListSlots(ctx context.Context, filter models.SlotFilter) ([]models.Slot, error) {
	slots, err := s.Slots.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("ListSlots: %w", err)
	}
	return slots, nil
}

func (s *DefaultCatalogService) GetSlot(ctx context.Context, slotID string) (*models.Slot, error) {
	slot, err := s.Slots.GetByID(ctx, slotID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newCatalogError(CodeNotFound, "slot %s not found", slotID)
	}
	if err != nil {
		return nil, fmt.Errorf("GetSlot: %w", err)
	}
	return slot, nil
}

// CreateSlots publishes bookable time units. Providers create their own
// slots; owners may create them for any provider of the tenant.
func (s *DefaultCatalogService) CreateSlots(ctx context.Context, actor models.Actor, tenantID string, in []models.SlotInput) ([]models.Slot, error) {
	if actor.TenantID != tenantID || (actor.Role != models.RoleProvider && actor.Role != models.RoleOwner) {
		return nil, newCatalogError(CodeForbidden, "only staff of this business can publish slots")
	}
	if len(in) == 0 {
		return nil, newCatalogError(CodeInvalidInput, "no slots given")
	}

	services := map[string]bool{}
	slots := make([]models.Slot, 0, len(in))
	for i, item := range in {
		if !item.EndsAt.After(item.StartsAt) {
			return nil, newCatalogError(CodeInvalidInput, "slot %d ends before it starts", i)
		}
		if item.MinPrice.IsNegative() {
			return nil, newCatalogError(CodeInvalidInput, "slot %d has a negative minimum price", i)
		}

		providerID := item.ProviderID
		if providerID == "" {
			providerID = actor.ID
		}
		if providerID != actor.ID {
			if actor.Role != models.RoleOwner {
				return nil, newCatalogError(CodeForbidden, "providers can only publish their own slots")
			}
			if err := s.checkStaff(ctx, tenantID, providerID); err != nil {
				return nil, err
			}
		}

		if !services[item.ServiceID] {
			svc, err := s.Services.GetByID(ctx, item.ServiceID)
			if errors.Is(err, repository.ErrNotFound) || (err == nil && svc.TenantID != tenantID) {
				return nil, newCatalogError(CodeInvalidInput, "unknown service %s", item.ServiceID)
			}
			if err != nil {
				return nil, fmt.Errorf("CreateSlots: %w", err)
			}
			services[item.ServiceID] = true
		}

		slots = append(slots, models.Slot{
			TenantID:   tenantID,
			ProviderID: providerID,
			ServiceID:  item.ServiceID,
			StartsAt:   item.StartsAt.UTC(),
			EndsAt:     item.EndsAt.UTC(),
			Status:     models.SlotStatusAvailable,
			IsAuction:  item.IsAuction,
			MinPrice:   item.MinPrice,
		})
	}

	ids, err := s.Slots.CreateMany(ctx, slots)
	if err != nil {
		return nil, fmt.Errorf("CreateSlots: %w", err)
	}
	for i := range slots {
		slots[i].ID = ids[i]
	}
	s.Logger.Info("Slots created", zap.String("tenant_id", tenantID), zap.Int("count", len(slots)))
	return slots, nil
}

func (s *DefaultCatalogService) checkStaff(ctx context.Context, tenantID, providerID string) error {
	p, err := s.Profiles.GetByID(ctx, providerID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && (!p.IsStaff() || p.TenantID != tenantID)) {
		return newCatalogError(CodeInvalidInput, "%s is not staff of this business", providerID)
	}
	if err != nil {
		return fmt.Errorf("CreateSlots: %w", err)
	}
	return nil
}

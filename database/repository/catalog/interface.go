package catalogRepo

import (
	"context"

	"chairbid/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ServiceRepository stores the offerings of each tenant.
type ServiceRepository interface {
	Create(ctx context.Context, svc *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	ListByTenant(ctx context.Context, tenantID string, activeOnly bool) ([]models.Service, error)
}

type mongoServiceRepo struct {
	coll *mongo.Collection
}

func NewMongoServiceRepo(db *mongo.Database) ServiceRepository {
	return &mongoServiceRepo{coll: db.Collection("services")}
}

package profileRepo

import (
	"context"

	"chairbid/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ProfileRepository interface {
	Upsert(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	ListStaff(ctx context.Context, tenantID string) ([]models.Profile, error)
}

type mongoProfileRepo struct {
	coll *mongo.Collection
}

func NewMongoProfileRepo(db *mongo.Database) ProfileRepository {
	return &mongoProfileRepo{coll: db.Collection("profiles")}
}

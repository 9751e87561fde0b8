package profileRepo

import (
	"context"
	"fmt"
	"time"

	"chairbid/database/repository"
	"chairbid/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Upsert replaces the profile document keyed by the auth subject, creating it if needed.
func (r *mongoProfileRepo) Upsert(ctx context.Context, profile *models.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"id": profile.ID}, profile, opts); err != nil {
		return fmt.Errorf("error saving profile %s: %w", profile.ID, err)
	}
	return nil
}

func (r *mongoProfileRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var profile models.Profile
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&profile); err != nil {
		return nil, repository.Translate(err)
	}
	return &profile, nil
}

// ListStaff returns the providers and owners of a tenant.
func (r *mongoProfileRepo) ListStaff(ctx context.Context, tenantID string) ([]models.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"tenantId": tenantID,
		"role":     bson.M{"$in": bson.A{models.RoleProvider, models.RoleOwner}},
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "displayName", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing staff: %w", err)
	}
	defer cursor.Close(ctx)

	staff := []models.Profile{}
	if err := cursor.All(ctx, &staff); err != nil {
		return nil, fmt.Errorf("error decoding staff: %w", err)
	}
	return staff, nil
}

// EnsureIndexes creates the necessary indexes on the profiles collection.
func (r *mongoProfileRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "tenantId", Value: 1}, {Key: "role", Value: 1}},
			Options: options.Index().SetName("tenant_role_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create profile indexes: %w", err)
	}
	return nil
}

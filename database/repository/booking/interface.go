package bookingRepo

import (
	"context"

	"chairbid/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListBySlot(ctx context.Context, slotID string) ([]models.Booking, error)
	ListForCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	ListForProvider(ctx context.Context, providerID string) ([]models.Booking, error)
	// Cancel moves a confirmed booking to cancelled. It returns
	// repository.ErrConflict when the booking is not confirmed.
	Cancel(ctx context.Context, id string) (*models.Booking, error)
	// CancelOthersForSlot cancels every confirmed booking on a slot except keepID.
	CancelOthersForSlot(ctx context.Context, slotID, keepID string) (int64, error)
	SetPaymentIntent(ctx context.Context, id, intentID string) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	return &mongoBookingRepo{coll: db.Collection("bookings")}
}

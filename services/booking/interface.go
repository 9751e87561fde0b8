package booking

import (
	"context"
	"time"

	bookingRepo "chairbid/database/repository/booking"
	catalogRepo "chairbid/database/repository/catalog"
	slotRepo "chairbid/database/repository/slot"
	"chairbid/models"
	"chairbid/services/notification"
	"chairbid/services/payment"
	"chairbid/services/reminder"
	"chairbid/utils"

	"go.uber.org/zap"
)

// BookingService books fixed-price slots and manages the resulting bookings.
type BookingService interface {
	BookSlot(ctx context.Context, actor models.Actor, slotID string) (*models.Booking, error)
	CancelBooking(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error)
	ListMyBookings(ctx context.Context, actor models.Actor) ([]models.Booking, error)
	GetBooking(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error)
}

type DefaultBookingService struct {
	Bookings bookingRepo.BookingRepository
	Slots    slotRepo.SlotRepository
	Services catalogRepo.ServiceRepository

	Locker    utils.Locker
	LockTTL   time.Duration
	Notifier  notification.NotificationService
	Payments  payment.Gateway
	Reminders reminder.Scheduler

	Logger *zap.Logger
}

func (s *DefaultBookingService) lockTTL() time.Duration {
	if s.LockTTL > 0 {
		return s.LockTTL
	}
	return 10 * time.Second
}

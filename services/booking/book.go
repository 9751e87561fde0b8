package booking

import (
	"context"
	"errors"
	"fmt"

	"chairbid/database/repository"
	"chairbid/models"
	"chairbid/services/payment"
	"chairbid/utils"

	"go.uber.org/zap"
)

// BookSlot reserves an available fixed-price slot at the service price.
func (s *DefaultBookingService) BookSlot(ctx context.Context, actor models.Actor, slotID string) (*models.Booking, error) {
	if actor.Role != models.RoleCustomer {
		return nil, newBookingError(CodeForbidden, "only customers can book slots")
	}

	slot, err := s.Slots.GetByID(ctx, slotID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newBookingError(CodeNotFound, "slot %s not found", slotID)
	}
	if err != nil {
		return nil, fmt.Errorf("BookSlot: %w", err)
	}
	if slot.IsAuction {
		return nil, newBookingError(CodeSlotUnavailable, "slot %s is sold by auction", slot.ID)
	}
	if slot.Status != models.SlotStatusAvailable {
		return nil, newBookingError(CodeSlotUnavailable, "slot %s is already booked", slot.ID)
	}

	svc, err := s.Services.GetByID(ctx, slot.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("BookSlot: load service %s: %w", slot.ServiceID, err)
	}

	booking := &models.Booking{
		TenantID:   slot.TenantID,
		SlotID:     slot.ID,
		ServiceID:  slot.ServiceID,
		ProviderID: slot.ProviderID,
		CustomerID: actor.ID,
		Source:     models.BookingSourceFixedPrice,
		Status:     models.BookingStatusConfirmed,
		PricePaid:  svc.Price,
	}

	err = utils.GuardSlot(ctx, s.Locker, slot.ID, s.lockTTL(), s.Logger, func() error {
		return s.reserve(ctx, slot.ID, booking)
	})
	if errors.Is(err, utils.ErrLockTimeout) {
		return nil, newBookingError(CodeSlotBusy, "slot %s is being booked, try again", slot.ID)
	}
	if err != nil {
		return nil, err
	}
	utils.BookingsCreated.WithLabelValues(models.BookingSourceFixedPrice).Inc()

	if err := payment.AttachIntent(ctx, s.Payments, s.Bookings, booking); err != nil {
		s.stepFailed("payment_intent", slot.ID, err)
	}
	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReminders(ctx, *booking, slot.StartsAt); err != nil {
			s.stepFailed("schedule_reminder", slot.ID, err)
		}
	}

	s.notify(ctx, *booking, booking.ProviderID, models.NotificationBookingCreated,
		"New booking", fmt.Sprintf("A customer booked your slot at %s", slot.StartsAt.Format("Jan 2 15:04")))

	s.Logger.Info("Slot booked",
		zap.String("booking_id", booking.ID), zap.String("slot_id", slot.ID), zap.String("customer_id", actor.ID))
	return booking, nil
}

// reserve flips the slot to booked and inserts the booking. The flip is
// reverted if the insert fails.
func (s *DefaultBookingService) reserve(ctx context.Context, slotID string, booking *models.Booking) error {
	err := s.Slots.TransitionStatus(ctx, slotID, models.SlotStatusAvailable, models.SlotStatusBooked)
	if errors.Is(err, repository.ErrConflict) {
		return newBookingError(CodeSlotUnavailable, "slot %s is already booked", slotID)
	}
	if err != nil {
		return fmt.Errorf("BookSlot: mark slot booked: %w", err)
	}

	if err := s.Bookings.Create(ctx, booking); err != nil {
		if rerr := s.Slots.TransitionStatus(ctx, slotID, models.SlotStatusBooked, models.SlotStatusAvailable); rerr != nil {
			s.stepFailed("release_slot", slotID, rerr)
		}
		return fmt.Errorf("BookSlot: %w", err)
	}
	return nil
}

// CancelBooking cancels a confirmed booking and returns the slot to sale.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	booking, err := s.load(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}

	cancelled, err := s.Bookings.Cancel(ctx, booking.ID)
	if errors.Is(err, repository.ErrConflict) {
		return nil, newBookingError(CodeInvalidState, "booking is %s", booking.Status)
	}
	if err != nil {
		return nil, fmt.Errorf("CancelBooking: %w", err)
	}

	err = s.Slots.TransitionStatus(ctx, cancelled.SlotID, models.SlotStatusBooked, models.SlotStatusAvailable)
	if err != nil && !errors.Is(err, repository.ErrConflict) {
		s.stepFailed("release_slot", cancelled.SlotID, err)
	}

	recipient := cancelled.ProviderID
	if actor.ID == cancelled.ProviderID {
		recipient = cancelled.CustomerID
	}
	s.notify(ctx, *cancelled, recipient, models.NotificationBookingCancel,
		"Booking cancelled", "A booking for your appointment was cancelled")
	return cancelled, nil
}

func (s *DefaultBookingService) ListMyBookings(ctx context.Context, actor models.Actor) ([]models.Booking, error) {
	var (
		bookings []models.Booking
		err      error
	)
	if actor.Role == models.RoleCustomer {
		bookings, err = s.Bookings.ListForCustomer(ctx, actor.ID)
	} else {
		bookings, err = s.Bookings.ListForProvider(ctx, actor.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("ListMyBookings: %w", err)
	}
	return bookings, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	return s.load(ctx, actor, bookingID)
}

// load fetches a booking visible to the actor.
func (s *DefaultBookingService) load(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newBookingError(CodeNotFound, "booking %s not found", bookingID)
	}
	if err != nil {
		return nil, fmt.Errorf("load booking %s: %w", bookingID, err)
	}
	if actor.ID != booking.CustomerID && actor.ID != booking.ProviderID {
		return nil, newBookingError(CodeForbidden, "you are not part of this booking")
	}
	return booking, nil
}

// stepFailed logs a best-effort step that failed and was left in place.
func (s *DefaultBookingService) stepFailed(step, slotID string, err error) {
	utils.StepFailures.WithLabelValues(step).Inc()
	s.Logger.Warn("Best-effort step failed", zap.String("step", step), zap.String("slot_id", slotID), zap.Error(err))
}

func (s *DefaultBookingService) notify(ctx context.Context, b models.Booking, recipientID, kind, title, body string) {
	if s.Notifier == nil || recipientID == "" {
		return
	}
	data := map[string]string{"bookingId": b.ID, "slotId": b.SlotID}
	if err := s.Notifier.Notify(ctx, recipientID, kind, title, body, data); err != nil {
		s.Logger.Warn("Failed to notify", zap.String("recipient", recipientID), zap.String("kind", kind), zap.Error(err))
	}
}

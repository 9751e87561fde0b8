package bidding

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

// AcceptBid settles a negotiation. The steps run in order and are not
// transactional: once the bid is accepted, later failures are reported as
// warnings and left in place.
func (s *DefaultBiddingService) AcceptBid(ctx context.Context, actor models.Actor, bidID string) (*AcceptResult, error) {
	bid, err := s.loadBid(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if !canRespond(actor, *bid) {
		return nil, newBidError(CodeForbidden, "you cannot accept this bid")
	}
	if bid.Status != models.BidStatusPending {
		return nil, newBidError(CodeInvalidState, "bid is %s", bid.Status)
	}

	var result *AcceptResult
	err = utils.GuardSlot(ctx, s.Locker, bid.SlotID, s.lockTTL(), s.Logger, func() error {
		var acceptErr error
		result, acceptErr = s.accept(ctx, *bid)
		return acceptErr
	})
	if errors.Is(err, utils.ErrLockTimeout) {
		return nil, newBidError(CodeSlotBusy, "slot %s is being settled, try again", bid.SlotID)
	}
	return result, err
}

func (s *DefaultBiddingService) accept(ctx context.Context, bid models.Bid) (*AcceptResult, error) {
	slot, err := s.Slots.GetByID(ctx, bid.SlotID)
	if err != nil {
		return nil, fmt.Errorf("AcceptBid: load slot %s: %w", bid.SlotID, err)
	}

	accepted, err := s.Bids.TransitionStatus(ctx, bid.ID, models.BidStatusPending, models.BidStatusAccepted)
	if errors.Is(err, repository.ErrConflict) {
		return nil, newBidError(CodeInvalidState, "bid is no longer pending")
	}
	if err != nil {
		return nil, fmt.Errorf("AcceptBid: %w", err)
	}
	result := &AcceptResult{Bid: *accepted}
	s.afterTransition(ctx, *accepted, "bid_accepted")

	booking := &models.Booking{
		TenantID:   slot.TenantID,
		SlotID:     slot.ID,
		ServiceID:  slot.ServiceID,
		ProviderID: accepted.ProviderID,
		CustomerID: accepted.CustomerID,
		BidID:      accepted.ID,
		Source:     models.BookingSourceAuction,
		Status:     models.BookingStatusConfirmed,
		PricePaid:  accepted.Amount,
	}
	if err := s.Bookings.Create(ctx, booking); err != nil {
		s.stepFailed("insert_booking", *accepted, err)
		return result, &BidError{Code: CodeIncomplete, Message: "bid accepted but the booking could not be created"}
	}
	result.Booking = booking
	utils.BookingsCreated.WithLabelValues(models.BookingSourceAuction).Inc()

	if n, err := s.Bookings.CancelOthersForSlot(ctx, slot.ID, booking.ID); err != nil {
		result.warn(s.stepFailed("cancel_other_bookings", *accepted, err))
	} else if n > 0 {
		s.Logger.Info("Cancelled conflicting bookings", zap.String("slot_id", slot.ID), zap.Int64("count", n))
	}

	if n, err := s.Bids.RejectPendingForSlot(ctx, slot.ID, accepted.ID); err != nil {
		result.warn(s.stepFailed("reject_sibling_bids", *accepted, err))
	} else if n > 0 {
		utils.BidTransitions.WithLabelValues(models.BidStatusRejected).Add(float64(n))
	}

	err = s.Slots.TransitionStatus(ctx, slot.ID, models.SlotStatusAvailable, models.SlotStatusBooked)
	if err != nil && !errors.Is(err, repository.ErrConflict) {
		result.warn(s.stepFailed("mark_slot_booked", *accepted, err))
	}

	if err := payment.AttachIntent(ctx, s.Payments, s.Bookings, booking); err != nil {
		result.warn(s.stepFailed("payment_intent", *accepted, err))
	}

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReminders(ctx, *booking, slot.StartsAt); err != nil {
			result.warn(s.stepFailed("schedule_reminder", *accepted, err))
		}
	}

	s.notify(ctx, *accepted, accepted.OwnerID(), models.NotificationBidAccepted,
		"Bid accepted", fmt.Sprintf("Your offer of %s was accepted", accepted.Amount.StringFixed(2)))
	if accepted.OwnerType == models.BidOwnerProvider {
		// the customer accepted a counter; the provider was notified above
		s.notify(ctx, *accepted, accepted.CustomerID, models.NotificationBookingCreated,
			"Booking confirmed", fmt.Sprintf("Your booking is confirmed at a price of %s", accepted.Amount.StringFixed(2)))
	}

	s.Logger.Info("Bid accepted",
		zap.String("bid_id", accepted.ID),
		zap.String("slot_id", slot.ID),
		zap.String("booking_id", booking.ID),
		zap.Int("warnings", len(result.Warnings)))
	return result, nil
}

func (r *AcceptResult) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

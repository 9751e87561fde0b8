package bidding

import (
	"context"
	"errors"
	"fmt"

	"chairbid/database/repository"
	"chairbid/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func (s *DefaultBiddingService) PlaceBid(ctx context.Context, actor models.Actor, in PlaceBidInput) (*models.Bid, error) {
	if actor.Role != models.RoleCustomer {
		return nil, newBidError(CodeForbidden, "only customers can place bids")
	}
	if !in.Amount.IsPositive() {
		return nil, newBidError(CodeInvalidAmount, "amount must be positive")
	}

	slot, err := s.Slots.GetByID(ctx, in.SlotID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newBidError(CodeNotFound, "slot %s not found", in.SlotID)
	}
	if err != nil {
		return nil, fmt.Errorf("PlaceBid: %w", err)
	}
	if !slot.IsAuction || slot.Status != models.SlotStatusAvailable {
		return nil, newBidError(CodeSlotUnavailable, "slot %s is not open for bidding", slot.ID)
	}
	if in.Amount.LessThan(slot.MinPrice) {
		return nil, newBidError(CodeInvalidAmount, "amount must be at least %s", slot.MinPrice.StringFixed(2))
	}

	auction, err := s.Auctions.GetLatestBySlot(ctx, slot.ID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		// auction flag without a window; bidding stays open until the slot is booked
	case err != nil:
		return nil, fmt.Errorf("PlaceBid: %w", err)
	case !auction.AcceptsBidsAt(s.now()):
		return nil, newBidError(CodeAuctionClosed, "auction for slot %s is closed", slot.ID)
	}

	bid := &models.Bid{
		TenantID:   slot.TenantID,
		SlotID:     slot.ID,
		ProviderID: slot.ProviderID,
		CustomerID: actor.ID,
		Amount:     in.Amount,
		OwnerType:  models.BidOwnerCustomer,
		Status:     models.BidStatusPending,
		Message:    in.Message,
	}
	if err := s.Bids.Create(ctx, bid); err != nil {
		return nil, fmt.Errorf("PlaceBid: %w", err)
	}
	s.Logger.Info("Bid placed",
		zap.String("bid_id", bid.ID), zap.String("slot_id", slot.ID), zap.String("amount", bid.Amount.String()))

	s.afterTransition(ctx, *bid, "bid_placed")
	s.notify(ctx, *bid, slot.ProviderID, models.NotificationBidPlaced,
		"New bid", fmt.Sprintf("A customer bid %s on your slot", bid.Amount.StringFixed(2)))
	return bid, nil
}

func (s *DefaultBiddingService) CounterBid(ctx context.Context, actor models.Actor, bidID string, amount decimal.Decimal, message string) (*models.Bid, error) {
	original, err := s.loadBid(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if original.ProviderID != actor.ID {
		return nil, newBidError(CodeForbidden, "only the slot's provider can counter this bid")
	}
	if original.OwnerType != models.BidOwnerCustomer || original.IsCounter() {
		return nil, newBidError(CodeInvalidState, "only customer bids can be countered")
	}
	if original.Status != models.BidStatusPending {
		return nil, newBidError(CodeInvalidState, "bid is %s", original.Status)
	}
	if !amount.GreaterThan(original.Amount) {
		return nil, newBidError(CodeInvalidAmount, "counter must be greater than %s", original.Amount.StringFixed(2))
	}

	// Claim the original before inserting the counter.
	if _, err := s.Bids.TransitionStatus(ctx, original.ID, models.BidStatusPending, models.BidStatusCountered); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, newBidError(CodeInvalidState, "bid is no longer pending")
		}
		return nil, fmt.Errorf("CounterBid: %w", err)
	}

	counter := &models.Bid{
		TenantID:    original.TenantID,
		SlotID:      original.SlotID,
		ProviderID:  original.ProviderID,
		CustomerID:  original.CustomerID,
		Amount:      amount,
		OwnerType:   models.BidOwnerProvider,
		Status:      models.BidStatusPending,
		ParentBidID: original.ID,
		Message:     message,
	}
	if err := s.Bids.Create(ctx, counter); err != nil {
		if _, rerr := s.Bids.TransitionStatus(ctx, original.ID, models.BidStatusCountered, models.BidStatusPending); rerr != nil {
			s.stepFailed("revert_countered", *original, rerr)
		}
		return nil, fmt.Errorf("CounterBid: %w", err)
	}

	original.Status = models.BidStatusCountered
	s.afterTransition(ctx, *original, "bid_countered")
	s.afterTransition(ctx, *counter, "bid_placed")
	s.notify(ctx, *counter, counter.CustomerID, models.NotificationBidCountered,
		"Counter offer", fmt.Sprintf("The provider countered with %s", amount.StringFixed(2)))
	return counter, nil
}

package bidding

import (
	"context"
	"errors"
	"fmt"

	"chairbid/database/repository"
	"chairbid/models"
)

func (s *DefaultBiddingService) RejectBid(ctx context.Context, actor models.Actor, bidID string) (*models.Bid, error) {
	bid, err := s.loadBid(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if !canRespond(actor, *bid) {
		return nil, newBidError(CodeForbidden, "you cannot reject this bid")
	}

	rejected, err := s.transition(ctx, *bid, models.BidStatusRejected)
	if err != nil {
		return nil, err
	}
	s.afterTransition(ctx, *rejected, "bid_rejected")
	s.notify(ctx, *rejected, rejected.OwnerID(), models.NotificationBidRejected,
		"Bid declined", fmt.Sprintf("Your offer of %s was declined", rejected.Amount.StringFixed(2)))
	return rejected, nil
}

func (s *DefaultBiddingService) WithdrawBid(ctx context.Context, actor models.Actor, bidID string) (*models.Bid, error) {
	bid, err := s.loadBid(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if bid.OwnerID() != actor.ID {
		return nil, newBidError(CodeForbidden, "only the bidder can withdraw this bid")
	}

	withdrawn, err := s.transition(ctx, *bid, models.BidStatusWithdrawn)
	if err != nil {
		return nil, err
	}
	s.afterTransition(ctx, *withdrawn, "bid_withdrawn")

	recipient := withdrawn.ProviderID
	if withdrawn.OwnerType == models.BidOwnerProvider {
		recipient = withdrawn.CustomerID
	}
	s.notify(ctx, *withdrawn, recipient, models.NotificationBidWithdrawn,
		"Bid withdrawn", fmt.Sprintf("An offer of %s was withdrawn", withdrawn.Amount.StringFixed(2)))
	return withdrawn, nil
}

// transition moves a pending bid to a terminal status.
func (s *DefaultBiddingService) transition(ctx context.Context, bid models.Bid, to string) (*models.Bid, error) {
	if bid.Status != models.BidStatusPending {
		return nil, newBidError(CodeInvalidState, "bid is %s", bid.Status)
	}
	updated, err := s.Bids.TransitionStatus(ctx, bid.ID, models.BidStatusPending, to)
	if errors.Is(err, repository.ErrConflict) {
		return nil, newBidError(CodeInvalidState, "bid is no longer pending")
	}
	if err != nil {
		return nil, fmt.Errorf("transition bid %s to %s: %w", bid.ID, to, err)
	}
	return updated, nil
}

// canRespond reports whether the actor is the counter-party of the bid:
// the provider for a customer bid, the customer for a provider counter.
func canRespond(actor models.Actor, bid models.Bid) bool {
	if bid.OwnerType == models.BidOwnerProvider {
		return actor.ID == bid.CustomerID
	}
	return actor.ID == bid.ProviderID
}

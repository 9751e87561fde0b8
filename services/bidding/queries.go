package bidding

import (
	"context"
	"fmt"

	"chairbid/models"
)

func (s *DefaultBiddingService) ListSlotBids(ctx context.Context, slotID string) ([]models.Bid, error) {
	bids, err := s.Bids.ListBySlot(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("ListSlotBids: %w", err)
	}
	return bids, nil
}

func (s *DefaultBiddingService) ListMyBids(ctx context.Context, actor models.Actor) ([]models.Bid, error) {
	bids, err := s.Bids.ListByParticipant(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("ListMyBids: %w", err)
	}
	return bids, nil
}

// GetThread returns the customer bid at the root of bidID's chain with its
// counter replies. Only the two parties can read it.
func (s *DefaultBiddingService) GetThread(ctx context.Context, actor models.Actor, bidID string) (*models.BidThread, error) {
	bid, err := s.loadBid(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if actor.ID != bid.CustomerID && actor.ID != bid.ProviderID {
		return nil, newBidError(CodeForbidden, "you are not part of this negotiation")
	}

	root := bid
	if bid.IsCounter() {
		if root, err = s.loadBid(ctx, bid.ParentBidID); err != nil {
			return nil, err
		}
	}
	replies, err := s.Bids.ListReplies(ctx, root.ID)
	if err != nil {
		return nil, fmt.Errorf("GetThread: %w", err)
	}
	if replies == nil {
		replies = []models.Bid{}
	}
	return &models.BidThread{Root: *root, Replies: replies}, nil
}

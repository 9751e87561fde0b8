package memory

import (
	"context"
	"testing"

	"chairbid/database/repository"
	bidRepo "chairbid/database/repository/bid"
	bookingRepo "chairbid/database/repository/booking"
	slotRepo "chairbid/database/repository/slot"
	"chairbid/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ bidRepo.BidRepository         = (*BidRepo)(nil)
	_ bookingRepo.BookingRepository = (*BookingRepo)(nil)
	_ slotRepo.SlotRepository       = (*SlotRepo)(nil)
)

func TestBidRepo_TransitionIsConditional(t *testing.T) {
	ctx := context.Background()
	repo := NewBidRepo()

	bid := &models.Bid{SlotID: "s1", Amount: decimal.NewFromInt(10), Status: models.BidStatusPending}
	require.NoError(t, repo.Create(ctx, bid))

	updated, err := repo.TransitionStatus(ctx, bid.ID, models.BidStatusPending, models.BidStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.BidStatusAccepted, updated.Status)

	_, err = repo.TransitionStatus(ctx, bid.ID, models.BidStatusPending, models.BidStatusAccepted)
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestBidRepo_RejectPendingForSlotKeepsWinner(t *testing.T) {
	ctx := context.Background()
	repo := NewBidRepo()

	var ids []string
	for i := 0; i < 3; i++ {
		b := &models.Bid{SlotID: "s1", Status: models.BidStatusPending}
		require.NoError(t, repo.Create(ctx, b))
		ids = append(ids, b.ID)
	}
	other := &models.Bid{SlotID: "s2", Status: models.BidStatusPending}
	require.NoError(t, repo.Create(ctx, other))

	n, err := repo.RejectPendingForSlot(ctx, "s1", ids[0])
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	keep, _ := repo.GetByID(ctx, ids[0])
	assert.Equal(t, models.BidStatusPending, keep.Status)
	untouched, _ := repo.GetByID(ctx, other.ID)
	assert.Equal(t, models.BidStatusPending, untouched.Status)
}

func TestSlotRepo_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewSlotRepo()

	_, err := repo.CreateMany(ctx, []models.Slot{
		{TenantID: "t1", ProviderID: "p1", IsAuction: true},
		{TenantID: "t1", ProviderID: "p2"},
		{TenantID: "t2", ProviderID: "p1"},
	})
	require.NoError(t, err)

	slots, err := repo.List(ctx, models.SlotFilter{TenantID: "t1", AuctionOnly: true})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "p1", slots[0].ProviderID)
	assert.Equal(t, models.SlotStatusAvailable, slots[0].Status)
}

func TestAuctionRepo_OneOpenPerSlot(t *testing.T) {
	ctx := context.Background()
	repo := NewAuctionRepo()

	require.NoError(t, repo.Create(ctx, &models.Auction{SlotID: "s1"}))
	assert.ErrorIs(t, repo.Create(ctx, &models.Auction{SlotID: "s1"}), repository.ErrConflict)
}

func TestBidRepo_ListsAreNeverNil(t *testing.T) {
	ctx := context.Background()
	repo := NewBidRepo()

	bids, err := repo.ListBySlot(ctx, "nothing-here")
	require.NoError(t, err)
	assert.NotNil(t, bids)
	assert.Empty(t, bids)

	mine, err := repo.ListByParticipant(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, mine)
}

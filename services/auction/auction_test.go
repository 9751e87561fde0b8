package auction

import (
	"context"
	"errors"
	"testing"
	"time"

	"chairbid/database/repository/memory"
	slotRepo "chairbid/database/repository/slot"
	"chairbid/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type eventLog []models.AuctionEvent

func (l *eventLog) Publish(_ context.Context, e models.AuctionEvent) error {
	*l = append(*l, e)
	return nil
}

var artist = models.Actor{ID: "artist-1", Role: models.RoleProvider, TenantID: "studio-1"}

func newService(t *testing.T) (*DefaultAuctionService, *memory.BidRepo, string, *eventLog) {
	t.Helper()
	now := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)
	slots := memory.NewSlotRepo()
	ids, err := slots.CreateMany(context.Background(), []models.Slot{{
		TenantID:   "studio-1",
		ProviderID: artist.ID,
		ServiceID:  "svc-tattoo",
		StartsAt:   now.Add(72 * time.Hour),
		EndsAt:     now.Add(75 * time.Hour),
	}})
	require.NoError(t, err)

	bids := memory.NewBidRepo()
	events := &eventLog{}
	svc := &DefaultAuctionService{
		Auctions: memory.NewAuctionRepo(),
		Slots:    slots,
		Bids:     bids,
		Events:   events,
		Logger:   zap.NewNop(),
		Now:      func() time.Time { return now },
	}
	return svc, bids, ids[0], events
}

func TestOpenAuction(t *testing.T) {
	svc, _, slotID, events := newService(t)
	ctx := context.Background()
	endsAt := svc.now().Add(24 * time.Hour)

	_, err := svc.OpenAuction(ctx, models.Actor{ID: "someone", Role: models.RoleProvider}, slotID, OpenInput{EndsAt: endsAt})
	assert.True(t, HasCode(err, CodeForbidden))
	_, err = svc.OpenAuction(ctx, artist, slotID, OpenInput{EndsAt: svc.now().Add(-time.Minute)})
	assert.True(t, HasCode(err, CodeInvalidInput))
	_, err = svc.OpenAuction(ctx, artist, slotID, OpenInput{EndsAt: svc.now().Add(100 * time.Hour)})
	assert.True(t, HasCode(err, CodeInvalidInput), "must end before the appointment")

	a, err := svc.OpenAuction(ctx, artist, slotID, OpenInput{EndsAt: endsAt, MinPrice: decimal.NewFromInt(120)})
	require.NoError(t, err)
	assert.Equal(t, models.AuctionStatusOpen, a.Status)

	slot, err := svc.Slots.GetByID(ctx, slotID)
	require.NoError(t, err)
	assert.True(t, slot.IsAuction)
	assert.True(t, decimal.NewFromInt(120).Equal(slot.MinPrice))

	_, err = svc.OpenAuction(ctx, artist, slotID, OpenInput{EndsAt: endsAt})
	assert.True(t, HasCode(err, CodeConflict), "one open auction per slot")

	require.Len(t, *events, 1)
	assert.Equal(t, "auction_opened", (*events)[0].Type)
}

// flakySlots fails SetAuction while failing is set.
type flakySlots struct {
	slotRepo.SlotRepository
	failing bool
}

func (f *flakySlots) SetAuction(ctx context.Context, id string, minPrice decimal.Decimal) error {
	if f.failing {
		return errors.New("write concern timeout")
	}
	return f.SlotRepository.SetAuction(ctx, id, minPrice)
}

func TestOpenAuction_SlotFlagFailureClosesWindow(t *testing.T) {
	svc, _, slotID, events := newService(t)
	ctx := context.Background()
	slots := &flakySlots{SlotRepository: svc.Slots, failing: true}
	svc.Slots = slots
	in := OpenInput{EndsAt: svc.now().Add(24 * time.Hour), MinPrice: decimal.NewFromInt(80)}

	_, err := svc.OpenAuction(ctx, artist, slotID, in)
	require.Error(t, err)
	assert.Empty(t, *events)

	orphan, err := svc.Auctions.GetLatestBySlot(ctx, slotID)
	require.NoError(t, err)
	assert.Equal(t, models.AuctionStatusClosed, orphan.Status)

	slots.failing = false
	a, err := svc.OpenAuction(ctx, artist, slotID, in)
	require.NoError(t, err, "the slot can be auctioned again")
	assert.Equal(t, models.AuctionStatusOpen, a.Status)
	assert.NotEqual(t, orphan.ID, a.ID)
}

func TestOpenAuction_OwnerOfTenant(t *testing.T) {
	svc, _, slotID, _ := newService(t)
	owner := models.Actor{ID: "owner-1", Role: models.RoleOwner, TenantID: "studio-1"}
	_, err := svc.OpenAuction(context.Background(), owner, slotID, OpenInput{EndsAt: svc.now().Add(time.Hour)})
	assert.NoError(t, err)
}

func TestSnapshot_HighestPendingCustomerBid(t *testing.T) {
	svc, bids, slotID, _ := newService(t)
	ctx := context.Background()
	_, err := svc.OpenAuction(ctx, artist, slotID, OpenInput{EndsAt: svc.now().Add(time.Hour)})
	require.NoError(t, err)

	for _, b := range []models.Bid{
		{SlotID: slotID, CustomerID: "c1", Amount: decimal.NewFromInt(150), OwnerType: models.BidOwnerCustomer, Status: models.BidStatusPending},
		{SlotID: slotID, CustomerID: "c2", Amount: decimal.NewFromInt(300), OwnerType: models.BidOwnerCustomer, Status: models.BidStatusWithdrawn},
		{SlotID: slotID, CustomerID: "c3", Amount: decimal.NewFromInt(180), OwnerType: models.BidOwnerCustomer, Status: models.BidStatusPending},
		{SlotID: slotID, CustomerID: "c1", Amount: decimal.NewFromInt(400), OwnerType: models.BidOwnerProvider, Status: models.BidStatusPending},
	} {
		b := b
		require.NoError(t, bids.Create(ctx, &b))
	}

	snap, err := svc.Snapshot(ctx, slotID)
	require.NoError(t, err)
	require.NotNil(t, snap.Auction)
	assert.Len(t, snap.Bids, 4)
	require.NotNil(t, snap.HighestBid)
	assert.Equal(t, "c3", snap.HighestBid.CustomerID)

	_, err = svc.Snapshot(ctx, "missing")
	assert.True(t, HasCode(err, CodeNotFound))
}

func TestSnapshot_NoAuctionNoBids(t *testing.T) {
	svc, _, slotID, _ := newService(t)
	snap, err := svc.Snapshot(context.Background(), slotID)
	require.NoError(t, err)
	assert.Nil(t, snap.Auction)
	assert.Nil(t, snap.HighestBid)
	assert.NotNil(t, snap.Bids)
}

func TestCloseExpired(t *testing.T) {
	svc, _, slotID, events := newService(t)
	ctx := context.Background()
	start := svc.now()

	a, err := svc.OpenAuction(ctx, artist, slotID, OpenInput{EndsAt: start.Add(time.Hour)})
	require.NoError(t, err)

	n, err := svc.CloseExpired(ctx, start.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 0, n, "window still open")

	n, err = svc.CloseExpired(ctx, start.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	latest, err := svc.Auctions.GetLatestBySlot(ctx, slotID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, latest.ID)
	assert.Equal(t, models.AuctionStatusClosed, latest.Status)
	require.NotNil(t, latest.ClosedAt)

	n, err = svc.CloseExpired(ctx, start.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, n, "already closed")

	assert.Equal(t, "auction_closed", (*events)[len(*events)-1].Type)
}

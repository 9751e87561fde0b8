package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"chairbid/database/repository/memory"
	"chairbid/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	customer = models.Actor{ID: "cust-1", Role: models.RoleCustomer}
	other    = models.Actor{ID: "cust-2", Role: models.RoleCustomer}
	barber   = models.Actor{ID: "prov-1", Role: models.RoleProvider, TenantID: "tenant-1"}
)

type stubGateway struct {
	intentID string
	err      error
}

func (g stubGateway) CreateIntent(context.Context, models.Booking) (string, error) {
	return g.intentID, g.err
}

type testEnv struct {
	svc      *DefaultBookingService
	bookings *memory.BookingRepo
	slots    *memory.SlotRepo
	slotID   string
	auction  string
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	services := memory.NewServiceRepo()
	svc := &models.Service{TenantID: "tenant-1", Name: "Skin fade", DurationMinutes: 45, Price: decimal.RequireFromString("35.00"), Active: true}
	require.NoError(t, services.Create(ctx, svc))

	slots := memory.NewSlotRepo()
	start := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	ids, err := slots.CreateMany(ctx, []models.Slot{
		{TenantID: "tenant-1", ProviderID: barber.ID, ServiceID: svc.ID, StartsAt: start, EndsAt: start.Add(45 * time.Minute)},
		{TenantID: "tenant-1", ProviderID: barber.ID, ServiceID: svc.ID, StartsAt: start.Add(time.Hour), EndsAt: start.Add(105 * time.Minute), IsAuction: true},
	})
	require.NoError(t, err)

	env := &testEnv{bookings: memory.NewBookingRepo(), slots: slots, slotID: ids[0], auction: ids[1]}
	env.svc = &DefaultBookingService{
		Bookings: env.bookings,
		Slots:    slots,
		Services: services,
		Logger:   zap.NewNop(),
	}
	return env
}

func TestBookSlot(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	b, err := env.svc.BookSlot(ctx, customer, env.slotID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
	assert.Equal(t, models.BookingSourceFixedPrice, b.Source)
	assert.True(t, decimal.RequireFromString("35").Equal(b.PricePaid))
	assert.Equal(t, barber.ID, b.ProviderID)

	slot, err := env.slots.GetByID(ctx, env.slotID)
	require.NoError(t, err)
	assert.Equal(t, models.SlotStatusBooked, slot.Status)

	_, err = env.svc.BookSlot(ctx, other, env.slotID)
	assert.True(t, HasCode(err, CodeSlotUnavailable), "booked slot: %v", err)
}

func TestBookSlot_Refusals(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	_, err := env.svc.BookSlot(ctx, barber, env.slotID)
	assert.True(t, HasCode(err, CodeForbidden))
	_, err = env.svc.BookSlot(ctx, customer, env.auction)
	assert.True(t, HasCode(err, CodeSlotUnavailable), "auction slots are not sold at a fixed price")
	_, err = env.svc.BookSlot(ctx, customer, "missing")
	assert.True(t, HasCode(err, CodeNotFound))
}

func TestBookSlot_ConcurrentCustomersGetOneBooking(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	const n = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := env.svc.BookSlot(ctx, customer, env.slotID); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			} else {
				assert.True(t, HasCode(err, CodeSlotUnavailable))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	bookings, err := env.bookings.ListBySlot(ctx, env.slotID)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

type brokenBookings struct {
	*memory.BookingRepo
}

func (brokenBookings) Create(context.Context, *models.Booking) error {
	return errors.New("disk full")
}

func TestBookSlot_InsertFailureReleasesSlot(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	env.svc.Bookings = brokenBookings{env.bookings}

	_, err := env.svc.BookSlot(ctx, customer, env.slotID)
	require.Error(t, err)

	slot, err := env.slots.GetByID(ctx, env.slotID)
	require.NoError(t, err)
	assert.Equal(t, models.SlotStatusAvailable, slot.Status)
}

func TestBookSlot_AttachesPaymentIntent(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	env.svc.Payments = stubGateway{intentID: "pi_123"}

	b, err := env.svc.BookSlot(ctx, customer, env.slotID)
	require.NoError(t, err)
	assert.Equal(t, "pi_123", b.PaymentIntentID)

	stored, err := env.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "pi_123", stored.PaymentIntentID)
}

func TestBookSlot_PaymentFailureKeepsBooking(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	env.svc.Payments = stubGateway{err: errors.New("card network down")}

	b, err := env.svc.BookSlot(ctx, customer, env.slotID)
	require.NoError(t, err)
	assert.Empty(t, b.PaymentIntentID)
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
}

func TestCancelBooking_ReleasesSlot(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	b, err := env.svc.BookSlot(ctx, customer, env.slotID)
	require.NoError(t, err)

	_, err = env.svc.CancelBooking(ctx, other, b.ID)
	assert.True(t, HasCode(err, CodeForbidden))

	cancelled, err := env.svc.CancelBooking(ctx, barber, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)

	slot, err := env.slots.GetByID(ctx, env.slotID)
	require.NoError(t, err)
	assert.Equal(t, models.SlotStatusAvailable, slot.Status)

	_, err = env.svc.CancelBooking(ctx, customer, b.ID)
	assert.True(t, HasCode(err, CodeInvalidState))

	_, err = env.svc.BookSlot(ctx, other, env.slotID)
	assert.NoError(t, err, "released slot can be booked again")
}

func TestListAndGetBookings(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	b, err := env.svc.BookSlot(ctx, customer, env.slotID)
	require.NoError(t, err)

	mine, err := env.svc.ListMyBookings(ctx, customer)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, b.ID, mine[0].ID)

	served, err := env.svc.ListMyBookings(ctx, barber)
	require.NoError(t, err)
	assert.Len(t, served, 1)

	none, err := env.svc.ListMyBookings(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, none)

	got, err := env.svc.GetBooking(ctx, barber, b.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, got.CustomerID)

	_, err = env.svc.GetBooking(ctx, other, b.ID)
	assert.True(t, HasCode(err, CodeForbidden))
	_, err = env.svc.GetBooking(ctx, customer, "missing")
	assert.True(t, HasCode(err, CodeNotFound))
}

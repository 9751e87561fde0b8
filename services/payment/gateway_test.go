package payment

import (
	"context"
	"errors"
	"testing"

	"chairbid/database/repository/memory"
	"chairbid/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(4250), MinorUnits(decimal.RequireFromString("42.50"), "usd"))
	assert.Equal(t, int64(4250), MinorUnits(decimal.RequireFromString("42.499"), "EUR"))
	assert.Equal(t, int64(4250), MinorUnits(decimal.RequireFromString("4250"), "jpy"))
}

type stubGateway struct {
	id  string
	err error
}

func (s stubGateway) CreateIntent(context.Context, models.Booking) (string, error) {
	return s.id, s.err
}

func TestAttachIntent(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewBookingRepo()
	booking := &models.Booking{SlotID: "s1", PricePaid: decimal.NewFromInt(30)}
	require.NoError(t, repo.Create(ctx, booking))

	require.NoError(t, AttachIntent(ctx, stubGateway{id: "pi_123"}, repo, booking))
	assert.Equal(t, "pi_123", booking.PaymentIntentID)
	stored, _ := repo.GetByID(ctx, booking.ID)
	assert.Equal(t, "pi_123", stored.PaymentIntentID)

	err := AttachIntent(ctx, stubGateway{err: errors.New("card_declined")}, repo, booking)
	assert.Error(t, err)

	require.NoError(t, AttachIntent(ctx, NoopGateway{}, repo, booking))
	require.NoError(t, AttachIntent(ctx, nil, repo, booking))
}

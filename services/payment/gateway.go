package payment

import (
	"context"
	"fmt"
	"strings"

	bookingRepo "chairbid/database/repository/booking"
	"chairbid/models"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// Gateway opens a payment for a booking and returns the provider's reference.
type Gateway interface {
	CreateIntent(ctx context.Context, booking models.Booking) (string, error)
}

// NoopGateway is used when no payment provider is configured.
type NoopGateway struct{}

func (NoopGateway) CreateIntent(context.Context, models.Booking) (string, error) {
	return "", nil
}

// StripeGateway creates Stripe PaymentIntents. stripe.Key must be set.
type StripeGateway struct {
	Currency string
}

// zero-decimal currencies per Stripe's documentation (subset in use).
var zeroDecimal = map[string]bool{"jpy": true, "krw": true, "vnd": true, "clp": true}

// MinorUnits converts an amount into the smallest currency unit.
func MinorUnits(amount decimal.Decimal, currency string) int64 {
	if zeroDecimal[strings.ToLower(currency)] {
		return amount.Round(0).IntPart()
	}
	return amount.Shift(2).Round(0).IntPart()
}

func (g *StripeGateway) CreateIntent(ctx context.Context, booking models.Booking) (string, error) {
	amount := MinorUnits(booking.PricePaid, g.Currency)
	if amount <= 0 {
		return "", nil
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(strings.ToLower(g.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey("booking-" + booking.ID)
	params.AddMetadata("booking_id", booking.ID)
	params.AddMetadata("slot_id", booking.SlotID)
	params.AddMetadata("tenant_id", booking.TenantID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe: create payment intent: %w", err)
	}
	return pi.ID, nil
}

// AttachIntent creates a payment intent for the booking and stores its id.
func AttachIntent(ctx context.Context, gw Gateway, bookings bookingRepo.BookingRepository, booking *models.Booking) error {
	if gw == nil {
		return nil
	}
	intentID, err := gw.CreateIntent(ctx, *booking)
	if err != nil {
		return err
	}
	if intentID == "" {
		return nil
	}
	if err := bookings.SetPaymentIntent(ctx, booking.ID, intentID); err != nil {
		return err
	}
	booking.PaymentIntentID = intentID
	return nil
}

package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"chairbid/database/repository/memory"
	"chairbid/services/auction"
	"chairbid/services/notification"
	"chairbid/services/reminder"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCloser struct {
	auction.AuctionService
	calls  []time.Time
	closed int
	err    error
}

func (f *fakeCloser) CloseExpired(_ context.Context, now time.Time) (int, error) {
	f.calls = append(f.calls, now)
	return f.closed, f.err
}

func TestCloseExpiredAuctions(t *testing.T) {
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	svc := &fakeCloser{closed: 3}

	assert.Equal(t, 3, closeExpiredAuctions(svc, zap.NewNop(), now))
	require.Len(t, svc.calls, 1)
	assert.Equal(t, now, svc.calls[0])

	svc.err = errors.New("mongo down")
	svc.closed = 0
	assert.Equal(t, 0, closeExpiredAuctions(svc, zap.NewNop(), now))
}

func TestStartAuctionCloser(t *testing.T) {
	_, err := StartAuctionCloser("not a schedule", &fakeCloser{}, zap.NewNop())
	assert.Error(t, err)

	c, err := StartAuctionCloser("@every 1h", &fakeCloser{}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, c.Entries(), 1)
	<-c.Stop().Done()
}

type silentNotifier struct {
	notification.NotificationService
	sent int
}

func (n *silentNotifier) Notify(context.Context, string, string, string, string, map[string]string) error {
	n.sent++
	return nil
}

func TestReminderMux(t *testing.T) {
	notifier := &silentNotifier{}
	mux := NewReminderMux(memory.NewBookingRepo(), notifier, zap.NewNop())

	task, _, err := reminder.NewReminderTask(reminder.Payload{BookingID: "gone", RecipientID: "cust-1"}, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.NoError(t, mux.ProcessTask(context.Background(), task), "missing booking is dropped")
	assert.Zero(t, notifier.sent)

	bad := asynq.NewTask(reminder.TypeAppointmentReminder, []byte("{"))
	err = mux.ProcessTask(context.Background(), bad)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

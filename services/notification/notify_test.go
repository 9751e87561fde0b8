package notification

import (
	"context"
	"testing"
	"time"

	"chairbid/database/repository/memory"
	"chairbid/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pushCall struct {
	token, title string
	data         map[string]string
}

type fakePusher struct {
	calls chan pushCall
}

func (f *fakePusher) Push(_ context.Context, token, title, _ string, data map[string]string) error {
	f.calls <- pushCall{token: token, title: title, data: data}
	return nil
}

func TestNotify_StoresAndPushes(t *testing.T) {
	ctx := context.Background()
	profiles := memory.NewProfileRepo()
	require.NoError(t, profiles.Upsert(ctx, &models.Profile{ID: "cust-1", Role: models.RoleCustomer, FCMToken: "tok-1"}))

	pusher := &fakePusher{calls: make(chan pushCall, 1)}
	svc := &DefaultNotificationService{
		Repo:     memory.NewNotificationRepo(),
		Profiles: profiles,
		Pusher:   pusher,
		Logger:   zap.NewNop(),
	}

	err := svc.Notify(ctx, "cust-1", models.NotificationBidAccepted, "Bid accepted", "See you soon", map[string]string{"bidId": "b1"})
	require.NoError(t, err)

	list, err := svc.List(ctx, "cust-1", 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.NotificationBidAccepted, list[0].Type)
	assert.False(t, list[0].Read)

	select {
	case call := <-pusher.calls:
		assert.Equal(t, "tok-1", call.token)
		assert.Equal(t, "b1", call.data["bidId"])
		assert.Equal(t, models.NotificationBidAccepted, call.data["type"])
	case <-time.After(time.Second):
		t.Fatal("push was not sent")
	}

	require.NoError(t, svc.MarkRead(ctx, "cust-1", list[0].ID))
	list, _ = svc.List(ctx, "cust-1", 10)
	assert.True(t, list[0].Read)
}

func TestNotify_NoTokenSkipsPush(t *testing.T) {
	ctx := context.Background()
	pusher := &fakePusher{calls: make(chan pushCall, 1)}
	svc := &DefaultNotificationService{
		Repo:     memory.NewNotificationRepo(),
		Profiles: memory.NewProfileRepo(),
		Pusher:   pusher,
		Logger:   zap.NewNop(),
	}

	require.NoError(t, svc.Notify(ctx, "ghost", models.NotificationBidPlaced, "t", "b", nil))
	select {
	case <-pusher.calls:
		t.Fatal("unexpected push for a recipient without a token")
	case <-time.After(50 * time.Millisecond):
	}
}

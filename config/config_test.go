package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaultsAndEnv(t *testing.T) {
	t.Setenv("STORE", "memory")
	t.Setenv("REMINDER_LEAD", "90m")
	t.Setenv("MAX_REQUESTS_PER_MIN", "30")

	LoadConfig()

	assert.True(t, UseMemoryStore())
	assert.Equal(t, 90*time.Minute, AppConfig.ReminderLead)
	assert.Equal(t, 30, AppConfig.MaxRequestsPerMin)
	assert.Equal(t, 10*time.Second, AppConfig.SlotLockTTL)
	assert.Equal(t, "@every 1m", AppConfig.AuctionCloseSchedule)
	assert.Equal(t, "chairbid", AppConfig.DatabaseName)
	assert.False(t, IsProduction())
}

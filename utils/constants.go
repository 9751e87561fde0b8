// File: utils/constants.go
package utils

import "time"

// ProfileCachePrefix is the prefix used for Redis profile cache keys.
const ProfileCachePrefix = "profile:"

// ProfileCacheTTL is the time-to-live for cached profiles.
const ProfileCacheTTL = 10 * time.Minute

// TenantCachePrefix is the prefix used for tenant-by-slug cache keys.
const TenantCachePrefix = "tenant:slug:"

// TenantCacheTTL is the time-to-live for cached tenants.
const TenantCacheTTL = 10 * time.Minute

// SlotLockPrefix is the prefix of the per-slot booking lock keys.
const SlotLockPrefix = "lock:slot:"

// AuctionChannelPrefix is the prefix of the Redis pub/sub channels carrying auction events.
const AuctionChannelPrefix = "auction:"

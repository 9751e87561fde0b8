package catalog

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"chairbid/database/repository/memory"
	"chairbid/models"
	"chairbid/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingTenants struct {
	*memory.TenantRepo
	lookups int32
}

func (c *countingTenants) GetBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	atomic.AddInt32(&c.lookups, 1)
	return c.TenantRepo.GetBySlug(ctx, slug)
}

type catalogEnv struct {
	svc      *DefaultCatalogService
	tenants  *countingTenants
	profiles *memory.ProfileRepo
	mr       *miniredis.Miniredis
}

func newCatalogEnv(t *testing.T) *catalogEnv {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	env := &catalogEnv{
		tenants:  &countingTenants{TenantRepo: memory.NewTenantRepo()},
		profiles: memory.NewProfileRepo(),
		mr:       mr,
	}
	env.svc = &DefaultCatalogService{
		Tenants:  env.tenants,
		Services: memory.NewServiceRepo(),
		Profiles: env.profiles,
		Slots:    memory.NewSlotRepo(),
		Cache:    client,
		Logger:   zap.NewNop(),
	}
	return env
}

// registerShop creates an owner with a tenant and returns the refreshed owner actor.
func (e *catalogEnv) registerShop(t *testing.T, ownerID, slug string) (models.Actor, *models.Tenant) {
	t.Helper()
	ctx := context.Background()
	_, err := e.svc.UpsertProfile(ctx, ownerID, models.ProfileInput{Role: models.RoleOwner, DisplayName: "Owner"})
	require.NoError(t, err)
	tenant, err := e.svc.CreateTenant(ctx, models.Actor{ID: ownerID, Role: models.RoleOwner}, TenantInput{
		Slug: slug, Name: "Sharp Cuts", Kind: models.TenantKindBarbershop, Timezone: "Europe/Lisbon",
	})
	require.NoError(t, err)
	profile, err := e.svc.GetProfile(ctx, ownerID)
	require.NoError(t, err)
	return models.ActorFromProfile(*profile), tenant
}

func TestGetTenantBySlug_UsesCache(t *testing.T) {
	env := newCatalogEnv(t)
	ctx := context.Background()
	_, created := env.registerShop(t, "owner-1", "sharp-cuts")

	first, err := env.svc.GetTenantBySlug(ctx, "sharp-cuts")
	require.NoError(t, err)
	assert.Equal(t, created.ID, first.ID)
	assert.True(t, env.mr.Exists(utils.TenantCachePrefix+"sharp-cuts"))
	ttl := env.mr.TTL(utils.TenantCachePrefix + "sharp-cuts")
	assert.Equal(t, utils.TenantCacheTTL, ttl)

	second, err := env.svc.GetTenantBySlug(ctx, "sharp-cuts")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Europe/Lisbon", second.Timezone)
	assert.Equal(t, int32(1), atomic.LoadInt32(&env.tenants.lookups), "second lookup should hit the cache")

	_, err = env.svc.GetTenantBySlug(ctx, "nope")
	assert.True(t, HasCode(err, CodeNotFound))
}

func TestGetTenantBySlug_CacheDown(t *testing.T) {
	env := newCatalogEnv(t)
	ctx := context.Background()
	env.registerShop(t, "owner-1", "sharp-cuts")
	env.mr.Close()

	tenant, err := env.svc.GetTenantBySlug(ctx, "sharp-cuts")
	require.NoError(t, err)
	assert.Equal(t, "sharp-cuts", tenant.Slug)
}

func TestCreateTenant(t *testing.T) {
	env := newCatalogEnv(t)
	ctx := context.Background()
	owner, tenant := env.registerShop(t, "owner-1", "sharp-cuts")
	assert.Equal(t, tenant.ID, owner.TenantID, "owner profile is attached and the cached copy evicted")

	_, err := env.svc.CreateTenant(ctx, owner, TenantInput{Slug: "second-shop", Name: "Second"})
	assert.True(t, HasCode(err, CodeConflict))

	_, err = env.svc.UpsertProfile(ctx, "owner-2", models.ProfileInput{Role: models.RoleOwner, DisplayName: "Other"})
	require.NoError(t, err)
	owner2 := models.Actor{ID: "owner-2", Role: models.RoleOwner}
	_, err = env.svc.CreateTenant(ctx, owner2, TenantInput{Slug: "sharp-cuts", Name: "Copycat"})
	assert.True(t, HasCode(err, CodeConflict), "slug is unique")
	_, err = env.svc.CreateTenant(ctx, owner2, TenantInput{Slug: "Bad Slug!", Name: "x"})
	assert.True(t, HasCode(err, CodeInvalidInput))
	_, err = env.svc.CreateTenant(ctx, owner2, TenantInput{Slug: "ink-lab", Name: "x", Timezone: "Mars/Olympus"})
	assert.True(t, HasCode(err, CodeInvalidInput))

	_, err = env.svc.CreateTenant(ctx, models.Actor{ID: "c", Role: models.RoleCustomer}, TenantInput{Slug: "mine", Name: "x"})
	assert.True(t, HasCode(err, CodeForbidden))
}

func TestUpsertProfile(t *testing.T) {
	env := newCatalogEnv(t)
	ctx := context.Background()
	_, tenant := env.registerShop(t, "owner-1", "sharp-cuts")

	_, err := env.svc.UpsertProfile(ctx, "prov-1", models.ProfileInput{Role: models.RoleProvider, DisplayName: "Rui"})
	assert.True(t, HasCode(err, CodeInvalidInput), "provider without a business")

	p, err := env.svc.UpsertProfile(ctx, "prov-1", models.ProfileInput{Role: models.RoleProvider, DisplayName: "Rui", TenantSlug: "sharp-cuts", FCMToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, p.TenantID)

	// cached read, then an update must evict it
	_, err = env.svc.GetProfile(ctx, "prov-1")
	require.NoError(t, err)
	assert.True(t, env.mr.Exists(utils.ProfileCachePrefix+"prov-1"))

	p, err = env.svc.UpsertProfile(ctx, "prov-1", models.ProfileInput{Role: models.RoleProvider, DisplayName: "Rui M."})
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, p.TenantID, "tenant kept when the role is unchanged")
	assert.Equal(t, "tok", p.FCMToken, "push token kept when omitted")
	assert.False(t, env.mr.Exists(utils.ProfileCachePrefix+"prov-1"))

	got, err := env.svc.GetProfile(ctx, "prov-1")
	require.NoError(t, err)
	assert.Equal(t, "Rui M.", got.DisplayName)

	_, err = env.svc.UpsertProfile(ctx, "owner-9", models.ProfileInput{Role: models.RoleOwner, DisplayName: "x", TenantSlug: "sharp-cuts"})
	assert.True(t, HasCode(err, CodeForbidden), "owners cannot join someone else's business")

	staff, err := env.svc.ListStaff(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Len(t, staff, 2)

	_, err = env.svc.GetProfile(ctx, "ghost")
	assert.True(t, HasCode(err, CodeNotFound))
}

func TestServicesAndSlots(t *testing.T) {
	env := newCatalogEnv(t)
	ctx := context.Background()
	owner, tenant := env.registerShop(t, "owner-1", "sharp-cuts")

	provProfile, err := env.svc.UpsertProfile(ctx, "prov-1", models.ProfileInput{Role: models.RoleProvider, DisplayName: "Rui", TenantSlug: "sharp-cuts"})
	require.NoError(t, err)
	prov := models.ActorFromProfile(*provProfile)

	_, err = env.svc.CreateService(ctx, prov, tenant.ID, models.ServiceInput{Name: "Cut", DurationMinutes: 30})
	assert.True(t, HasCode(err, CodeForbidden), "providers cannot add services")

	svc, err := env.svc.CreateService(ctx, owner, tenant.ID, models.ServiceInput{Name: "Cut", DurationMinutes: 30, Price: decimal.NewFromInt(25)})
	require.NoError(t, err)
	services, err := env.svc.ListServices(ctx, tenant.ID)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, svc.ID, services[0].ID)

	start := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	slots, err := env.svc.CreateSlots(ctx, prov, tenant.ID, []models.SlotInput{
		{ServiceID: svc.ID, StartsAt: start, EndsAt: start.Add(30 * time.Minute)},
		{ServiceID: svc.ID, StartsAt: start.Add(time.Hour), EndsAt: start.Add(90 * time.Minute), IsAuction: true, MinPrice: decimal.NewFromInt(20)},
	})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, prov.ID, slots[0].ProviderID)
	assert.NotEmpty(t, slots[0].ID)

	got, err := env.svc.GetSlot(ctx, slots[1].ID)
	require.NoError(t, err)
	assert.True(t, got.IsAuction)

	auctions, err := env.svc.ListSlots(ctx, models.SlotFilter{TenantID: tenant.ID, AuctionOnly: true})
	require.NoError(t, err)
	assert.Len(t, auctions, 1)

	_, err = env.svc.CreateSlots(ctx, prov, tenant.ID, []models.SlotInput{{ServiceID: svc.ID, StartsAt: start, EndsAt: start}})
	assert.True(t, HasCode(err, CodeInvalidInput), "empty range")
	_, err = env.svc.CreateSlots(ctx, prov, tenant.ID, []models.SlotInput{{ServiceID: "other", StartsAt: start, EndsAt: start.Add(time.Hour)}})
	assert.True(t, HasCode(err, CodeInvalidInput), "unknown service")
	_, err = env.svc.CreateSlots(ctx, prov, tenant.ID, []models.SlotInput{{ServiceID: svc.ID, ProviderID: "owner-1", StartsAt: start, EndsAt: start.Add(time.Hour)}})
	assert.True(t, HasCode(err, CodeForbidden), "providers publish for themselves only")
	_, err = env.svc.CreateSlots(ctx, models.Actor{ID: "c", Role: models.RoleCustomer}, tenant.ID, []models.SlotInput{{ServiceID: svc.ID, StartsAt: start, EndsAt: start.Add(time.Hour)}})
	assert.True(t, HasCode(err, CodeForbidden))

	byOwner, err := env.svc.CreateSlots(ctx, owner, tenant.ID, []models.SlotInput{{ServiceID: svc.ID, ProviderID: prov.ID, StartsAt: start.Add(2 * time.Hour), EndsAt: start.Add(150 * time.Minute)}})
	require.NoError(t, err)
	assert.Equal(t, prov.ID, byOwner[0].ProviderID)

	_, err = env.svc.GetSlot(ctx, "missing")
	assert.True(t, HasCode(err, CodeNotFound))
}

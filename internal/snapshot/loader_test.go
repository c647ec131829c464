package snapshot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/ispdesk/internal/analytics/engine"
	"github.com/smallbiznis/ispdesk/internal/cache"
	"github.com/smallbiznis/ispdesk/internal/config"
	campaigndomain "github.com/smallbiznis/ispdesk/internal/campaign/domain"
	customerdomain "github.com/smallbiznis/ispdesk/internal/customer/domain"
	paymentdomain "github.com/smallbiznis/ispdesk/internal/payment/domain"
	plandomain "github.com/smallbiznis/ispdesk/internal/plan/domain"
	ticketdomain "github.com/smallbiznis/ispdesk/internal/ticket/domain"
	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type failingPlans struct {
	plandomain.Repository
}

func (failingPlans) List(context.Context, ...docstore.QueryOption) ([]plandomain.Plan, error) {
	return nil, errors.New("backend unavailable")
}

type fixture struct {
	loader    *Loader
	customers customerdomain.Repository
	params    Params
}

func setup(t *testing.T) fixture {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&customerdomain.Customer{},
		&plandomain.Plan{},
		&paymentdomain.Payment{},
		&ticketdomain.Ticket{},
		&campaigndomain.Campaign{},
	))

	p := Params{
		Log:       zap.NewNop(),
		Customers: docstore.NewGormCollection[customerdomain.Customer](conn, customerdomain.CollectionName),
		Plans:     docstore.NewGormCollection[plandomain.Plan](conn, plandomain.CollectionName),
		Payments:  docstore.NewGormCollection[paymentdomain.Payment](conn, paymentdomain.CollectionName),
		Tickets:   docstore.NewGormCollection[ticketdomain.Ticket](conn, ticketdomain.CollectionName),
		Campaigns: docstore.NewGormCollection[campaigndomain.Campaign](conn, campaigndomain.CollectionName),
		Cache:     cache.NewTTLCache[string, engine.Snapshot](),
	}
	return fixture{loader: NewLoader(p), customers: p.Customers, params: p}
}

func TestLoadScopesToShop(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	require.NoError(t, f.customers.Create(ctx, customerdomain.Customer{ID: "a", ShopID: "shop-1", Name: "A", CreatedAt: &now}))
	require.NoError(t, f.customers.Create(ctx, customerdomain.Customer{ID: "b", ShopID: "shop-2", Name: "B", CreatedAt: &now}))
	require.NoError(t, f.params.Plans.Create(ctx, plandomain.Plan{ID: "p", ShopID: "shop-1", Name: "Basic", Price: 100}))

	snap, err := f.loader.Load(ctx, "shop-1")
	require.NoError(t, err)
	require.Len(t, snap.Customers, 1)
	assert.Equal(t, "a", snap.Customers[0].ID)
	assert.Len(t, snap.Plans, 1)
	assert.Empty(t, snap.Payments)
}

func TestLoadCachesUntilInvalidated(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.customers.Create(ctx, customerdomain.Customer{ID: "a", ShopID: "shop-1", Name: "A"}))
	first, err := f.loader.Load(ctx, "shop-1")
	require.NoError(t, err)
	require.Len(t, first.Customers, 1)

	require.NoError(t, f.customers.Create(ctx, customerdomain.Customer{ID: "b", ShopID: "shop-1", Name: "B"}))
	cached, err := f.loader.Load(ctx, "shop-1")
	require.NoError(t, err)
	assert.Len(t, cached.Customers, 1)

	f.loader.Invalidate("shop-1")
	fresh, err := f.loader.Load(ctx, "shop-1")
	require.NoError(t, err)
	assert.Len(t, fresh.Customers, 2)
}

func TestLoadWithZeroTTLSkipsCache(t *testing.T) {
	f := setup(t)
	cfg := config.DefaultDashboardConfig()
	cfg.SnapshotCacheTTL = 0
	f.params.Dashboard = config.StaticDashboardConfig(cfg)
	loader := NewLoader(f.params)
	ctx := context.Background()

	require.NoError(t, f.customers.Create(ctx, customerdomain.Customer{ID: "a", ShopID: "shop-1", Name: "A"}))
	first, err := loader.Load(ctx, "shop-1")
	require.NoError(t, err)
	require.Len(t, first.Customers, 1)

	require.NoError(t, f.customers.Create(ctx, customerdomain.Customer{ID: "b", ShopID: "shop-1", Name: "B"}))
	second, err := loader.Load(ctx, "shop-1")
	require.NoError(t, err)
	assert.Len(t, second.Customers, 2)
}

func TestLoadFailsWhenAnyCollectionFails(t *testing.T) {
	f := setup(t)
	p := f.params
	p.Plans = failingPlans{}
	loader := NewLoader(p)

	_, err := loader.Load(context.Background(), "shop-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load plans")

	_, ok := p.Cache.Get("shop-1")
	assert.False(t, ok)
}

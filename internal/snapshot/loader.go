package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/smallbiznis/ispdesk/internal/analytics/engine"
	"github.com/smallbiznis/ispdesk/internal/cache"
	campaigndomain "github.com/smallbiznis/ispdesk/internal/campaign/domain"
	"github.com/smallbiznis/ispdesk/internal/config"
	customerdomain "github.com/smallbiznis/ispdesk/internal/customer/domain"
	"github.com/smallbiznis/ispdesk/internal/observability/metrics"
	"github.com/smallbiznis/ispdesk/internal/observability/tracing"
	paymentdomain "github.com/smallbiznis/ispdesk/internal/payment/domain"
	plandomain "github.com/smallbiznis/ispdesk/internal/plan/domain"
	ticketdomain "github.com/smallbiznis/ispdesk/internal/ticket/domain"
	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const cacheName = "snapshot"

type Params struct {
	fx.In

	Log       *zap.Logger
	Customers customerdomain.Repository
	Plans     plandomain.Repository
	Payments  paymentdomain.Repository
	Tickets   ticketdomain.Repository
	Campaigns campaigndomain.Repository
	Cache     cache.Cache[string, engine.Snapshot]
	Dashboard *config.DashboardConfigHolder `optional:"true"`
	Metrics   *metrics.Metrics              `optional:"true"`
}

// Loader reads the record set the aggregation views are computed from.
type Loader struct {
	log       *zap.Logger
	customers customerdomain.Repository
	plans     plandomain.Repository
	payments  paymentdomain.Repository
	tickets   ticketdomain.Repository
	campaigns campaigndomain.Repository
	cache     cache.Cache[string, engine.Snapshot]
	dashboard *config.DashboardConfigHolder
	metrics   *metrics.Metrics
}

func NewLoader(p Params) *Loader {
	c := p.Cache
	if c == nil {
		c = cache.NoopCache[string, engine.Snapshot]{}
	}
	return &Loader{
		log:       p.Log.Named("snapshot.loader"),
		customers: p.Customers,
		plans:     p.Plans,
		payments:  p.Payments,
		tickets:   p.Tickets,
		campaigns: p.Campaigns,
		cache:     c,
		dashboard: p.Dashboard,
		metrics:   p.Metrics,
	}
}

// Load returns the shop's records, from cache when a fresh copy exists.
// Collections are fetched concurrently and the first failure cancels the rest.
func (l *Loader) Load(ctx context.Context, shopID string) (engine.Snapshot, error) {
	if cached, ok := l.cache.Get(shopID); ok {
		l.metrics.ObserveCache(cacheName, true)
		return cached, nil
	}
	l.metrics.ObserveCache(cacheName, false)

	ctx, span := tracing.StartSpan(ctx, "snapshot.load", attribute.String("shop_id", shopID))
	defer span.End()

	start := time.Now()
	var snap engine.Snapshot
	scope := docstore.Where("shopId", shopID)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Customers, err = l.customers.List(gctx, scope)
		return wrap("customers", err)
	})
	g.Go(func() (err error) {
		snap.Plans, err = l.plans.List(gctx, scope)
		return wrap("plans", err)
	})
	g.Go(func() (err error) {
		snap.Payments, err = l.payments.List(gctx, scope)
		return wrap("payments", err)
	})
	g.Go(func() (err error) {
		snap.Tickets, err = l.tickets.List(gctx, scope)
		return wrap("tickets", err)
	})
	g.Go(func() (err error) {
		snap.Campaigns, err = l.campaigns.List(gctx, scope)
		return wrap("campaigns", err)
	})
	if err := g.Wait(); err != nil {
		span.RecordError(tracing.SafeError(err))
		return engine.Snapshot{}, err
	}

	l.metrics.SetSnapshotRecords(customerdomain.CollectionName, len(snap.Customers))
	l.metrics.SetSnapshotRecords(plandomain.CollectionName, len(snap.Plans))
	l.metrics.SetSnapshotRecords(paymentdomain.CollectionName, len(snap.Payments))
	l.metrics.SetSnapshotRecords(ticketdomain.CollectionName, len(snap.Tickets))
	l.metrics.SetSnapshotRecords(campaigndomain.CollectionName, len(snap.Campaigns))

	if ttl := l.dashboard.Get().SnapshotCacheTTL; ttl > 0 {
		l.cache.Set(shopID, snap, ttl)
	}
	l.log.Debug("snapshot loaded",
		zap.String("shop_id", shopID),
		zap.Int("customers", len(snap.Customers)),
		zap.Int("payments", len(snap.Payments)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return snap, nil
}

func (l *Loader) Invalidate(shopID string) {
	l.cache.Delete(shopID)
}

func wrap(collection string, err error) error {
	if err != nil {
		return fmt.Errorf("load %s: %w", collection, err)
	}
	return nil
}

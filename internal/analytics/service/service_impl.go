package service

import (
	"context"
	"fmt"
	"time"

	activitydomain "github.com/smallbiznis/ispdesk/internal/activity/domain"
	"github.com/smallbiznis/ispdesk/internal/analytics/domain"
	"github.com/smallbiznis/ispdesk/internal/analytics/engine"
	"github.com/smallbiznis/ispdesk/internal/clock"
	"github.com/smallbiznis/ispdesk/internal/config"
	"github.com/smallbiznis/ispdesk/internal/observability/metrics"
	"github.com/smallbiznis/ispdesk/internal/observability/tracing"
	settingsdomain "github.com/smallbiznis/ispdesk/internal/settings/domain"
	"github.com/smallbiznis/ispdesk/internal/shopcontext"
	"github.com/smallbiznis/ispdesk/internal/snapshot"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	Clock     clock.Clock
	Snapshots snapshot.Source
	Settings  settingsdomain.Service
	Activity  activitydomain.Service
	Dashboard *config.DashboardConfigHolder `optional:"true"`
	Metrics   *metrics.Metrics              `optional:"true"`
}

type Service struct {
	log       *zap.Logger
	clock     clock.Clock
	snapshots snapshot.Source
	settings  settingsdomain.Service
	activity  activitydomain.Service
	dashboard *config.DashboardConfigHolder
	metrics   *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		log:       p.Log.Named("analytics.service"),
		clock:     p.Clock,
		snapshots: p.Snapshots,
		settings:  p.Settings,
		activity:  p.Activity,
		dashboard: p.Dashboard,
		metrics:   p.Metrics,
	}
}

// view loads the shop snapshot under one reference instant and times the
// aggregation that follows.
func (s *Service) view(ctx context.Context, name string, fn func(ctx context.Context, snap engine.Snapshot, now time.Time) error) (err error) {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return domain.ErrInvalidShop
	}

	ctx, span := tracing.StartSpan(ctx, "analytics."+name, attribute.String("shop_id", shopID))
	defer span.End()

	now := s.clock.Now()
	start := time.Now()
	defer func() {
		s.metrics.ObserveAggregation(name, time.Since(start), err)
		if err != nil {
			span.RecordError(tracing.SafeError(err))
		}
	}()

	snap, err := s.snapshots.Load(ctx, shopID)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	return fn(ctx, snap, now)
}

func (s *Service) Dashboard(ctx context.Context) (domain.DashboardView, error) {
	var out domain.DashboardView
	err := s.view(ctx, "dashboard", func(ctx context.Context, snap engine.Snapshot, now time.Time) error {
		cfg := s.dashboard.Get()
		recent, err := s.activity.Recent(ctx, cfg.RecentActivityLimit)
		if err != nil {
			return fmt.Errorf("recent activity: %w", err)
		}
		if recent == nil {
			recent = []activitydomain.Activity{}
		}
		days := cfg.DailyRevenueDays
		if days <= 0 {
			days = engine.DefaultDailyRevenueDays
		}
		out = domain.DashboardView{
			Stats:          engine.DashboardStats(snap, now),
			DailyRevenue:   engine.DailyRevenue(snap.Payments, now, days),
			RecentActivity: recent,
		}
		return nil
	})
	return out, err
}

func (s *Service) Payments(ctx context.Context) (domain.PaymentsView, error) {
	var out domain.PaymentsView
	err := s.view(ctx, "payments", func(ctx context.Context, snap engine.Snapshot, now time.Time) error {
		settings, err := s.settings.Get(ctx)
		if err != nil {
			return fmt.Errorf("get settings: %w", err)
		}

		rows := engine.ResolvePayments(snap.Customers, snap.Plans, now)
		lines := make([]domain.PaymentLine, 0, len(rows))
		for _, row := range rows {
			plan := row.Customer.Plan
			if plan == "" {
				plan = engine.NoPlan
			}
			lines = append(lines, domain.PaymentLine{
				CustomerID:   row.Customer.ID,
				CustomerName: row.Customer.Name,
				Plan:         plan,
				Amount:       row.Amount,
				AmountLabel:  engine.FormatCurrency(row.Amount, settings),
				DueDate:      row.DueDate,
				Status:       row.Status,
				Badge:        engine.StatusBadge(row.Status),
			})
		}
		out = domain.PaymentsView{Rows: lines, Settings: settings}
		return nil
	})
	return out, err
}

func (s *Service) Analytics(ctx context.Context) (domain.AnalyticsView, error) {
	var out domain.AnalyticsView
	err := s.view(ctx, "analytics", func(_ context.Context, snap engine.Snapshot, now time.Time) error {
		revenue, newCustomers := engine.BuildMonthlySeries(snap.Payments, snap.Customers, now)
		out = domain.AnalyticsView{
			Revenue:      revenue,
			NewCustomers: newCustomers,
			Distribution: engine.PlanDistribution(snap.Customers),
			Retention:    engine.ClassifyRetention(snap.Customers, now),
		}
		return nil
	})
	return out, err
}

func (s *Service) Suggestions(ctx context.Context) (domain.SuggestionsView, error) {
	var out domain.SuggestionsView
	err := s.view(ctx, "suggestions", func(ctx context.Context, snap engine.Snapshot, now time.Time) error {
		settings, err := s.settings.Get(ctx)
		if err != nil {
			return fmt.Errorf("get settings: %w", err)
		}
		summary := engine.Summarize(snap.Customers, snap.Plans, snap.Payments, now)
		rendered := engine.RenderSuggestions(summary, settings)
		out = domain.SuggestionsView{
			Summary:     summary,
			Suggestions: rendered,
			Text:        rendered.Text(),
			Settings:    settings,
		}
		return nil
	})
	return out, err
}

func (s *Service) Messaging(ctx context.Context) (engine.ChannelStats, error) {
	var out engine.ChannelStats
	err := s.view(ctx, "messaging", func(_ context.Context, snap engine.Snapshot, _ time.Time) error {
		out = engine.MessagingStats(snap.Campaigns)
		return nil
	})
	return out, err
}

func (s *Service) Assistant(ctx context.Context, message string) (domain.AssistantReply, error) {
	if _, ok := shopcontext.ShopIDFromContext(ctx); !ok {
		return domain.AssistantReply{}, domain.ErrInvalidShop
	}

	intent := ClassifyIntent(message)
	if intent != domain.IntentSuggestions {
		return domain.AssistantReply{Intent: intent, Reply: staticReply(intent)}, nil
	}

	view, err := s.Suggestions(ctx)
	if err != nil {
		return domain.AssistantReply{}, err
	}
	return domain.AssistantReply{Intent: intent, Reply: view.Text}, nil
}

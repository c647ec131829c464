package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/ispdesk/internal/analytics/engine"
	"github.com/smallbiznis/ispdesk/internal/cache"
	"github.com/smallbiznis/ispdesk/internal/clock"
	"github.com/smallbiznis/ispdesk/internal/config"
	customerdomain "github.com/smallbiznis/ispdesk/internal/customer/domain"
	"github.com/smallbiznis/ispdesk/internal/observability/metrics"
	reminderdomain "github.com/smallbiznis/ispdesk/internal/reminder/domain"
	shopdomain "github.com/smallbiznis/ispdesk/internal/shop/domain"
	"github.com/smallbiznis/ispdesk/internal/shopcontext"
	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	JobExpiryReminders = "expiry_reminders"

	lockPrefix = "ispdesk:scheduler:"
)

var ErrInvalidConfig = errors.New("scheduler: invalid config")

type Params struct {
	fx.In

	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Shops     shopdomain.Service
	Customers customerdomain.Repository
	Reminders reminderdomain.Service
	Dashboard *config.DashboardConfigHolder `optional:"true"`
	Metrics   *metrics.Metrics              `optional:"true"`
	Locker    *cache.Locker                 `optional:"true"`
	Config    Config                        `optional:"true"`
}

type Scheduler struct {
	log       *zap.Logger
	cfg       Config
	genID     *snowflake.Node
	clock     clock.Clock
	shops     shopdomain.Service
	customers customerdomain.Repository
	reminders reminderdomain.Service
	dashboard *config.DashboardConfigHolder
	metrics   *metrics.Metrics
	locker    *cache.Locker
}

func New(p Params) (*Scheduler, error) {
	if p.Log == nil || p.GenID == nil || p.Clock == nil || p.Shops == nil || p.Customers == nil || p.Reminders == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		log:       p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		cfg:       p.Config.withDefaults(),
		genID:     p.GenID,
		clock:     p.Clock,
		shops:     p.Shops,
		customers: p.Customers,
		reminders: p.Reminders,
		dashboard: p.Dashboard,
		metrics:   p.Metrics,
		locker:    p.Locker,
	}, nil
}

// runJob runs fn under a timeout and, when Redis is configured, a lock shared
// by every replica. A deadline is a soft timeout: it is counted and logged but
// not returned.
func (s *Scheduler) runJob(parent context.Context, name string, fn func(ctx context.Context, run *jobRun) error) error {
	timeout := s.cfg.JobTimeout
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	lockKey := lockPrefix + name
	token, acquired, err := s.locker.TryLock(ctx, lockKey, timeout)
	if err != nil {
		s.log.Warn("scheduler lock unavailable, running unlocked", zap.String("job", name), zap.Error(err))
		acquired = true
	}
	if !acquired {
		s.log.Debug("job locked by another replica", zap.String("job", name))
		return nil
	}
	defer func() {
		if err := s.locker.Release(context.Background(), lockKey, token); err != nil {
			s.log.Warn("scheduler lock release failed", zap.String("job", name), zap.Error(err))
		}
	}()

	run := s.newJobRun(name)
	s.logJobStart(ctx, run)
	start := time.Now()

	err = fn(ctx, run)
	s.metrics.ObserveJob(name, time.Since(start), err)
	if err != nil && run.errorCount == 0 {
		run.IncError()
	}
	s.logJobFinish(ctx, run)
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		s.log.Warn("job timed out",
			zap.String("job", name),
			zap.String("run_id", run.runID),
			zap.Duration("timeout", timeout),
			zap.Error(err),
		)
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}

func (s *Scheduler) RunOnce(parent context.Context) error {
	var err error

	jobs := []struct {
		Name string
		Run  func(context.Context, *jobRun) error
	}{
		{JobExpiryReminders, s.ExpiryRemindersJob},
	}

	for _, job := range jobs {
		if s.isJobEnabled(job.Name) {
			err = errors.Join(err, s.runJob(parent, job.Name, job.Run))
		}
	}
	return err
}

func (s *Scheduler) RunForever(ctx context.Context) {
	for {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("scheduler run failed", zap.Error(err))
		}

		timer := time.NewTimer(s.interval())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// interval is re-read every run so dashboard config reloads apply.
func (s *Scheduler) interval() time.Duration {
	if s.cfg.RunInterval > 0 {
		return s.cfg.RunInterval
	}
	if d := s.dashboard.Get().ReminderInterval; d > 0 {
		return d
	}
	return time.Hour
}

func (s *Scheduler) isJobEnabled(jobName string) bool {
	if len(s.cfg.EnabledJobs) == 0 {
		return true
	}
	for _, enabled := range s.cfg.EnabledJobs {
		if strings.EqualFold(enabled, jobName) {
			return true
		}
	}
	return false
}

// ExpiryRemindersJob schedules a reminder for every customer whose plan
// expires on the lead day. Failures of one shop do not stop the others.
func (s *Scheduler) ExpiryRemindersJob(ctx context.Context, run *jobRun) error {
	shops, err := s.shops.List(ctx)
	if err != nil {
		return fmt.Errorf("list shops: %w", err)
	}

	leadDays := s.dashboard.Get().ReminderLeadDays
	now := s.clock.Now()

	for _, shop := range shops {
		if err := ctx.Err(); err != nil {
			return err
		}
		created, err := s.remindShop(ctx, shop.ID, now, leadDays)
		run.AddProcessed(created)
		s.metrics.AddRemindersCreated(created)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			s.logShopError(ctx, run, "scheduler.reminders.failed", shop.ID, err)
		}
	}
	return nil
}

func (s *Scheduler) remindShop(ctx context.Context, shopID string, now time.Time, leadDays int) (int, error) {
	customers, err := s.customers.List(ctx, docstore.Where("shopId", shopID))
	if err != nil {
		return 0, fmt.Errorf("list customers: %w", err)
	}

	ctx = shopcontext.WithShopID(s.withShopLogContext(ctx, shopID), shopID)
	created := 0
	var errs error
	for _, c := range engine.DueForReminder(customers, now, leadDays) {
		_, isNew, err := s.reminders.Schedule(ctx, reminderdomain.ScheduleReminderRequest{
			CustomerID:   c.ID,
			Name:         c.Name,
			Channel:      reminderdomain.ChannelAll,
			Type:         reminderdomain.TypePlanExpiry,
			ScheduledFor: *c.Expiry,
		})
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("customer %s: %w", c.ID, err))
			continue
		}
		if isNew {
			created++
		}
	}
	if created > 0 {
		s.logger(ctx).Info("scheduler.reminders.created",
			zap.String("shop_id", shopID),
			zap.Int("count", created),
		)
	}
	return created, errs
}

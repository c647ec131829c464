package scheduler

import (
	"context"
	"time"

	obscontext "github.com/smallbiznis/ispdesk/internal/observability/context"
	obslogger "github.com/smallbiznis/ispdesk/internal/observability/logger"
	"github.com/smallbiznis/ispdesk/internal/observability/metrics"
	"go.uber.org/zap"
)

type jobRun struct {
	job            string
	runID          string
	startedAt      time.Time
	processedCount int
	errorCount     int
}

func (r *jobRun) AddProcessed(count int) {
	if r == nil || count <= 0 {
		return
	}
	r.processedCount += count
}

func (r *jobRun) IncError() {
	if r == nil {
		return
	}
	r.errorCount++
}

func (s *Scheduler) newJobRun(job string) *jobRun {
	return &jobRun{
		job:       job,
		runID:     s.genID.Generate().String(),
		startedAt: time.Now(),
	}
}

func (s *Scheduler) withShopLogContext(ctx context.Context, shopID string) context.Context {
	if shopID != "" {
		ctx = obscontext.WithShopID(ctx, shopID)
	}
	return ctx
}

func (s *Scheduler) logger(ctx context.Context) *zap.Logger {
	return obslogger.WithContext(ctx, s.log)
}

func (s *Scheduler) logJobStart(ctx context.Context, run *jobRun) {
	s.logger(ctx).Info("scheduler.job.start",
		zap.String("job", run.job),
		zap.String("run_id", run.runID),
	)
}

func (s *Scheduler) logJobFinish(ctx context.Context, run *jobRun) {
	fields := []zap.Field{
		zap.String("job", run.job),
		zap.String("run_id", run.runID),
		zap.Int64("duration_ms", time.Since(run.startedAt).Milliseconds()),
		zap.Int("processed_count", run.processedCount),
		zap.Int("error_count", run.errorCount),
	}
	log := s.logger(ctx)
	if run.errorCount > 0 {
		log.Warn("scheduler.job.finish", fields...)
		return
	}
	log.Info("scheduler.job.finish", fields...)
}

func (s *Scheduler) logShopError(ctx context.Context, run *jobRun, msg, shopID string, err error) {
	if err == nil {
		return
	}
	run.IncError()
	ctx = s.withShopLogContext(ctx, shopID)
	s.logger(ctx).Error(msg,
		zap.String("job", run.job),
		zap.String("shop_id", shopID),
		zap.String("error_type", metrics.ClassifyJobReason(err)),
		zap.Error(err),
	)
}

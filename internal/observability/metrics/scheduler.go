package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"
)

const (
	JobReasonDeadlineExceeded = "deadline_exceeded"
	JobReasonCanceled         = "canceled"
	JobReasonUniqueViolation  = "unique_violation"
	JobReasonUnavailable      = "unavailable"
	JobReasonUnknown          = "unknown"
)

// ClassifyJobReason maps a job error to a low-cardinality label.
func ClassifyJobReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return JobReasonDeadlineExceeded
	case errors.Is(err, context.Canceled):
		return JobReasonCanceled
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return JobReasonUniqueViolation
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return JobReasonUniqueViolation
	}

	switch status.Code(err) {
	case codes.AlreadyExists:
		return JobReasonUniqueViolation
	case codes.Unavailable:
		return JobReasonUnavailable
	case codes.DeadlineExceeded:
		return JobReasonDeadlineExceeded
	}
	return JobReasonUnknown
}

// ObserveJob records one scheduler job run. Deadline errors count as
// timeouts and errors.
func (m *Metrics) ObserveJob(job string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.jobRuns.WithLabelValues(job).Inc()
	m.jobDuration.WithLabelValues(job).Observe(elapsed.Seconds())
	if err == nil {
		return
	}
	reason := ClassifyJobReason(err)
	if reason == JobReasonDeadlineExceeded {
		m.jobTimeouts.WithLabelValues(job).Inc()
	}
	m.jobErrors.WithLabelValues(job, reason).Inc()
}

func (m *Metrics) AddRemindersCreated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.remindersCreated.Add(float64(n))
}

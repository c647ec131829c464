package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"
)

func newTestMetrics() *Metrics {
	return newMetrics(prometheus.NewRegistry(), Config{ServiceName: "ispdesk", Environment: "test"})
}

func TestClassifyJobReason(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "deadline", err: fmt.Errorf("wrap: %w", context.DeadlineExceeded), want: JobReasonDeadlineExceeded},
		{name: "canceled", err: context.Canceled, want: JobReasonCanceled},
		{name: "gorm_duplicate", err: gorm.ErrDuplicatedKey, want: JobReasonUniqueViolation},
		{name: "pg_duplicate", err: &pgconn.PgError{Code: "23505"}, want: JobReasonUniqueViolation},
		{name: "firestore_exists", err: status.Error(codes.AlreadyExists, "exists"), want: JobReasonUniqueViolation},
		{name: "firestore_unavailable", err: status.Error(codes.Unavailable, "down"), want: JobReasonUnavailable},
		{name: "unknown", err: errors.New("boom"), want: JobReasonUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyJobReason(tc.err); got != tc.want {
				t.Fatalf("expected reason %q, got %q", tc.want, got)
			}
		})
	}
}

func TestObserveJobCountsTimeouts(t *testing.T) {
	m := newTestMetrics()

	m.ObserveJob("expiry_reminders", time.Second, nil)
	m.ObserveJob("expiry_reminders", time.Second, context.DeadlineExceeded)

	if got := testutil.ToFloat64(m.jobRuns.WithLabelValues("expiry_reminders")); got != 2 {
		t.Fatalf("expected 2 runs, got %v", got)
	}
	if got := testutil.ToFloat64(m.jobTimeouts.WithLabelValues("expiry_reminders")); got != 1 {
		t.Fatalf("expected 1 timeout, got %v", got)
	}
	if got := testutil.ToFloat64(m.jobErrors.WithLabelValues("expiry_reminders", JobReasonDeadlineExceeded)); got != 1 {
		t.Fatalf("expected 1 error, got %v", got)
	}
}

func TestAddRemindersCreatedIgnoresZero(t *testing.T) {
	m := newTestMetrics()

	m.AddRemindersCreated(0)
	m.AddRemindersCreated(3)

	if got := testutil.ToFloat64(m.remindersCreated); got != 3 {
		t.Fatalf("expected 3 reminders, got %v", got)
	}
}

func TestObserveAggregationAndCache(t *testing.T) {
	m := newTestMetrics()

	m.ObserveAggregation("dashboard", 10*time.Millisecond, nil)
	m.ObserveAggregation("dashboard", 10*time.Millisecond, errors.New("load failed"))
	m.ObserveCache("snapshot", true)
	m.ObserveCache("snapshot", false)
	m.ObserveCache("snapshot", false)

	if got := testutil.ToFloat64(m.aggregationRuns.WithLabelValues("dashboard", "error")); got != 1 {
		t.Fatalf("expected 1 failed run, got %v", got)
	}
	if got := testutil.ToFloat64(m.cacheLookups.WithLabelValues("snapshot", "miss")); got != 2 {
		t.Fatalf("expected 2 misses, got %v", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveJob("job", time.Second, errors.New("boom"))
	m.ObserveAggregation("view", time.Second, nil)
	m.ObserveCache("snapshot", true)
	m.AddRemindersCreated(1)
	m.SetSnapshotRecords("customers", 4)
	if m.Enabled() {
		t.Fatalf("nil metrics must report disabled")
	}
}

func TestGinMiddlewareRecordsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newTestMetrics()
	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/api/customers/:id", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/customers/42", nil))

	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodGet, "/api/customers/:id", "4xx")); got != 1 {
		t.Fatalf("expected 1 request, got %v", got)
	}
	if got := testutil.ToFloat64(m.httpInFlight); got != 0 {
		t.Fatalf("expected no requests in flight, got %v", got)
	}
}

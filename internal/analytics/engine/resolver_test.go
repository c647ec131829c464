package engine

import (
	"testing"
	"time"

	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func daysFromNow(days int) *time.Time {
	t := testNow.AddDate(0, 0, days)
	return &t
}

func TestResolvePaymentScenarios(t *testing.T) {
	plans := []Plan{
		{ID: "p1", Name: "Basic", Price: 499},
		{ID: "p2", Name: "Fortnight", Price: 299, BillingCycleDays: ptr(15)},
	}

	cases := []struct {
		name       string
		customer   Customer
		wantStatus string
		wantDue    string
		wantAmount float64
	}{
		{
			name:       "expired_yesterday",
			customer:   Customer{Name: "A", Plan: "Basic", Expiry: daysFromNow(-1)},
			wantStatus: StatusPending,
			wantDue:    "2025-03-09",
			wantAmount: 499,
		},
		{
			name:       "expiring_in_three_days",
			customer:   Customer{Name: "B", Plan: "Basic", Expiry: daysFromNow(3)},
			wantStatus: StatusPending,
			wantDue:    "2025-03-13",
			wantAmount: 499,
		},
		{
			name:       "expiring_in_thirty_days",
			customer:   Customer{Name: "C", Plan: "Basic", Expiry: daysFromNow(30)},
			wantStatus: StatusActive,
			wantDue:    "2025-04-09",
			wantAmount: 499,
		},
		{
			name:       "computed_from_plan_cycle",
			customer:   Customer{Name: "D", Plan: "Fortnight"},
			wantStatus: StatusActive,
			wantDue:    "2025-03-25",
			wantAmount: 299,
		},
		{
			name:       "unknown_plan_uses_default_cycle",
			customer:   Customer{Name: "E", Plan: "Legacy"},
			wantStatus: StatusActive,
			wantDue:    "2025-04-09",
			wantAmount: 0,
		},
	}

	idx := NewPlanIndex(plans)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row := ResolvePayment(tc.customer, idx, testNow)
			assert.Equal(t, tc.wantStatus, row.Status)
			assert.Equal(t, tc.wantDue, row.DueDate)
			assert.Equal(t, tc.wantAmount, row.Amount)
		})
	}
}

func TestResolvePaymentSevenDayBoundary(t *testing.T) {
	idx := NewPlanIndex(nil)

	// 6.5 days rounds up to 7 and is still pending.
	within := testNow.Add(6*24*time.Hour + 12*time.Hour)
	assert.Equal(t, StatusPending, ResolvePayment(Customer{Expiry: &within}, idx, testNow).Status)

	// 7.5 days rounds up to 8.
	beyond := testNow.Add(7*24*time.Hour + 12*time.Hour)
	assert.Equal(t, StatusActive, ResolvePayment(Customer{Expiry: &beyond}, idx, testNow).Status)
}

func TestResolvePaymentMalformedCycle(t *testing.T) {
	plans := []Plan{
		{Name: "Broken", Price: 100, BillingCycleDays: ptr(docstore.InvalidInt)},
		{Name: "Negative", Price: 100, BillingCycleDays: ptr(-3)},
		{Name: "Forever", Price: 100, BillingCycleDays: ptr(1 << 40)},
	}
	idx := NewPlanIndex(plans)

	for _, p := range plans {
		row := ResolvePayment(Customer{Plan: p.Name}, idx, testNow)
		assert.Empty(t, row.DueDate, p.Name)
		assert.Equal(t, StatusPending, row.Status, p.Name)
		assert.Equal(t, 100.0, row.Amount, p.Name)
	}
}

func TestNewPlanIndexFirstNameWins(t *testing.T) {
	idx := NewPlanIndex([]Plan{
		{ID: "a", Name: "Gold", Price: 900},
		{ID: "b", Name: "Gold", Price: 100},
		{ID: "c", Price: 50},
	})

	require.NotNil(t, idx.Lookup("Gold"))
	assert.Equal(t, "a", idx.Lookup("Gold").ID)
	assert.Equal(t, 50.0, idx.Price("c"))
	assert.Nil(t, idx.Lookup(""))
}

func TestResolvePaymentsKeepsOrder(t *testing.T) {
	customers := []Customer{{ID: "1", Name: "Z"}, {ID: "2", Name: "A"}}
	rows := ResolvePayments(customers, nil, testNow)

	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0].Customer.ID)
	assert.Nil(t, rows[0].Plan)
}

func TestNextDueDateUsesMidnightInLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2025, 3, 10, 23, 45, 0, 0, loc)

	due := NextDueDate(&Plan{BillingCycleDays: ptr(1)}, now)
	require.NotNil(t, due)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, loc), *due)
	assert.Equal(t, "2025-03-11", FormatDate(due))
}

func TestResolvePaymentFormatsExpiryInLocalDay(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
	expiry := time.Date(2025, 3, 20, 20, 0, 0, 0, time.UTC)
	c := Customer{ID: "c1", Plan: "Basic", Expiry: &expiry}

	row := ResolvePayment(c, NewPlanIndex(nil), now)
	assert.Equal(t, "2025-03-21", row.DueDate)
	assert.Equal(t, StatusActive, row.Status)

	due := DueForReminder([]Customer{c}, now, 11)
	require.Len(t, due, 1)
	assert.Equal(t, "c1", due[0].ID)
}

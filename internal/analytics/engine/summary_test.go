package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestARPUWithoutActiveCustomers(t *testing.T) {
	assert.Zero(t, ARPU(5000, 0))
	assert.Equal(t, 250.0, ARPU(1000, 4))

	summary := Summarize(
		[]Customer{{Plan: "Basic", Expiry: daysFromNow(-5)}},
		nil,
		[]Payment{{Amount: 900}},
		testNow,
	)
	assert.Zero(t, summary.ARPU)
	assert.Equal(t, 900.0, summary.TotalRevenue)
	assert.Equal(t, NoPlan, summary.TopPlan)
}

func TestMarginPercent(t *testing.T) {
	plans := NewPlanIndex([]Plan{
		{Name: "A", Price: 600, Cost: ptr(300.0)},
		{Name: "B", Price: 400, Cost: ptr(100.0)},
	})
	active := []Customer{{Plan: "A"}, {Plan: "B"}}

	assert.Equal(t, 60, MarginPercent(active, plans))
	assert.Zero(t, MarginPercent([]Customer{{Plan: "missing"}}, plans))
	assert.Zero(t, MarginPercent(nil, plans))
}

func TestMedianUpsell(t *testing.T) {
	plans := []Plan{
		{Name: "Large", Price: 300},
		{Name: "Small", Price: 100},
		{Name: "Medium", Price: 200},
	}

	assert.Equal(t, 200.0, MedianPlanPrice(plans))
	assert.Equal(t, 1, UpsellCount([]Customer{{Plan: "Small"}}, plans))
	assert.Equal(t, 0, UpsellCount([]Customer{{Plan: "Large"}}, plans))
	assert.Equal(t, 1, UpsellCount([]Customer{{Plan: "Unknown"}, {Plan: "Medium"}}, plans))
	assert.Zero(t, UpsellCount([]Customer{{Plan: "Small"}}, nil))
}

func TestMedianPlanPriceEvenCountTakesUpperMiddle(t *testing.T) {
	plans := []Plan{{Price: 400}, {Price: 100}, {Price: 300}, {Price: 200}}
	assert.Equal(t, 300.0, MedianPlanPrice(plans))
	assert.Zero(t, MedianPlanPrice(nil))
}

func TestPlanDistributionAndTopPlan(t *testing.T) {
	dist := PlanDistribution([]Customer{
		{Plan: "Silver"},
		{Plan: ""},
		{Plan: "Gold"},
		{Plan: "Gold"},
		{Plan: "Silver"},
	})

	require.Len(t, dist, 3)
	assert.Equal(t, PlanCount{Plan: "Silver", Count: 2}, dist[0])
	assert.Equal(t, PlanCount{Plan: UnassignedPlan, Count: 1}, dist[1])

	top, count := TopPlan(dist)
	assert.Equal(t, "Silver", top)
	assert.Equal(t, 2, count)

	top, count = TopPlan(nil)
	assert.Equal(t, NoPlan, top)
	assert.Zero(t, count)
}

func TestSummarizeIsIdempotent(t *testing.T) {
	customers := []Customer{
		{Plan: "Basic", Expiry: daysFromNow(12)},
		{Plan: "Pro"},
		{Plan: "Pro", Expiry: daysFromNow(-3)},
	}
	plans := []Plan{{Name: "Basic", Price: 300, Cost: ptr(100.0)}, {Name: "Pro", Price: 700}}
	payments := []Payment{{Amount: 300}, {Amount: 700}}

	first := Summarize(customers, plans, payments, testNow)
	second := Summarize(customers, plans, payments, testNow)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, first.ActiveCustomers)
	assert.Equal(t, 500.0, first.ARPU)
	assert.Equal(t, "Basic", first.TopPlan)
	assert.Equal(t, 90, first.MarginPercent)
	assert.Equal(t, 1, first.Upsell)
	assert.Equal(t, RetentionBuckets{Retained: 1, AtRisk: 1, Churned: 1}, first.Retention)
}

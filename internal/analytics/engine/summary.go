package engine

import (
	"math"
	"sort"
	"time"
)

// PlanCount is the number of active customers on one plan label.
type PlanCount struct {
	Plan  string `json:"plan"`
	Count int    `json:"count"`
}

// SuggestionSummary holds the numbers the suggestion text is rendered from.
type SuggestionSummary struct {
	ARPU            float64          `json:"arpu"`
	TopPlan         string           `json:"topPlan"`
	TopPlanCount    int              `json:"topPlanCount"`
	MarginPercent   int              `json:"marginPercent"`
	Upsell          int              `json:"upsell"`
	Retention       RetentionBuckets `json:"retention"`
	TotalRevenue    float64          `json:"totalRevenue"`
	ActiveCustomers int              `json:"activeCustomers"`
	PlanCount       int              `json:"planCount"`
	Distribution    []PlanCount      `json:"distribution"`
}

// IsActive reports whether c has no expiry or has not expired yet.
func IsActive(c Customer, now time.Time) bool {
	return c.Expiry == nil || !c.Expiry.Before(now)
}

func ActiveCustomers(customers []Customer, now time.Time) []Customer {
	active := make([]Customer, 0, len(customers))
	for _, c := range customers {
		if IsActive(c, now) {
			active = append(active, c)
		}
	}
	return active
}

// PlanDistribution counts customers per plan label in first-seen order.
// Customers without a plan are counted under UnassignedPlan.
func PlanDistribution(customers []Customer) []PlanCount {
	dist := []PlanCount{}
	pos := map[string]int{}
	for _, c := range customers {
		label := c.Plan
		if label == "" {
			label = UnassignedPlan
		}
		if i, ok := pos[label]; ok {
			dist[i].Count++
			continue
		}
		pos[label] = len(dist)
		dist = append(dist, PlanCount{Plan: label, Count: 1})
	}
	return dist
}

// TopPlan returns the label with the highest count. Ties go to the label seen
// first. An empty distribution yields NoPlan.
func TopPlan(dist []PlanCount) (string, int) {
	top, count := NoPlan, 0
	for _, pc := range dist {
		if pc.Count > count {
			top, count = pc.Plan, pc.Count
		}
	}
	return top, count
}

func TotalRevenue(payments []Payment) float64 {
	var total float64
	for _, p := range payments {
		total += Amount(p)
	}
	return total
}

func ARPU(totalRevenue float64, activeCount int) float64 {
	if activeCount <= 0 {
		return 0
	}
	return totalRevenue / float64(activeCount)
}

// MarginPercent is the rounded gross margin of the active customers' plans.
func MarginPercent(active []Customer, plans PlanIndex) int {
	var revenue, cost float64
	for _, c := range active {
		revenue += plans.Price(c.Plan)
		cost += plans.Cost(c.Plan)
	}
	if revenue == 0 {
		return 0
	}
	return int(math.Round((revenue - cost) / revenue * 100))
}

// MedianPlanPrice sorts plan prices ascending and takes the element at n/2,
// the upper middle for an even count. No plans yields 0.
func MedianPlanPrice(plans []Plan) float64 {
	if len(plans) == 0 {
		return 0
	}
	prices := make([]float64, 0, len(plans))
	for _, p := range plans {
		prices = append(prices, p.Price)
	}
	sort.Float64s(prices)
	return prices[len(prices)/2]
}

// UpsellCount counts active customers whose plan is priced below the median.
// Unmatched customers count with price 0.
func UpsellCount(active []Customer, plans []Plan) int {
	if len(plans) == 0 {
		return 0
	}
	median := MedianPlanPrice(plans)
	idx := NewPlanIndex(plans)
	n := 0
	for _, c := range active {
		if idx.Price(c.Plan) < median {
			n++
		}
	}
	return n
}

// Summarize computes every figure of the suggestion block at now.
func Summarize(customers []Customer, plans []Plan, payments []Payment, now time.Time) SuggestionSummary {
	active := ActiveCustomers(customers, now)
	dist := PlanDistribution(active)
	top, topCount := TopPlan(dist)
	total := TotalRevenue(payments)

	return SuggestionSummary{
		ARPU:            ARPU(total, len(active)),
		TopPlan:         top,
		TopPlanCount:    topCount,
		MarginPercent:   MarginPercent(active, NewPlanIndex(plans)),
		Upsell:          UpsellCount(active, plans),
		Retention:       ClassifyRetention(customers, now),
		TotalRevenue:    total,
		ActiveCustomers: len(active),
		PlanCount:       len(plans),
		Distribution:    dist,
	}
}

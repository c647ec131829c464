package engine

import (
	"math"
	"time"
)

// SeriesMonths is the length of the trailing window, current month included.
const SeriesMonths = 12

// MonthlySeries maps "YYYY-MM" keys to totals. Keys are ascending and end at
// the month of the reference instant.
type MonthlySeries struct {
	Keys   []string           `json:"keys"`
	Values map[string]float64 `json:"values"`
}

// MonthKeys returns the trailing-12-month keys ending at now's month.
func MonthKeys(now time.Time) []string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	keys := make([]string, SeriesMonths)
	for i := 0; i < SeriesMonths; i++ {
		keys[i] = first.AddDate(0, i-(SeriesMonths-1), 0).Format(monthLayout)
	}
	return keys
}

// MonthKey formats t as "YYYY-MM".
func MonthKey(t time.Time) string {
	return t.Format(monthLayout)
}

func newSeries(now time.Time) MonthlySeries {
	keys := MonthKeys(now)
	values := make(map[string]float64, len(keys))
	for _, k := range keys {
		values[k] = 0
	}
	return MonthlySeries{Keys: keys, Values: values}
}

func (s MonthlySeries) add(t time.Time, amount float64) {
	key := MonthKey(t)
	if _, ok := s.Values[key]; ok {
		s.Values[key] += amount
	}
}

// Total sums every bucket.
func (s MonthlySeries) Total() float64 {
	var total float64
	for _, k := range s.Keys {
		total += s.Values[k]
	}
	return total
}

// PaymentTime resolves when a payment counts: PaidAt, then CreatedAt, then now.
func PaymentTime(p Payment, now time.Time) time.Time {
	switch {
	case p.PaidAt != nil:
		return p.PaidAt.In(now.Location())
	case p.CreatedAt != nil:
		return p.CreatedAt.In(now.Location())
	default:
		return now
	}
}

// Amount is the payment amount with NaN and infinities read as 0.
func Amount(p Payment) float64 {
	if math.IsNaN(p.Amount) || math.IsInf(p.Amount, 0) {
		return 0
	}
	return p.Amount
}

// CustomerTime resolves when a customer joined: CreatedAt, then now.
func CustomerTime(c Customer, now time.Time) time.Time {
	if c.CreatedAt != nil {
		return c.CreatedAt.In(now.Location())
	}
	return now
}

// RevenueSeries buckets payment amounts by month. Payments outside the window
// are dropped.
func RevenueSeries(payments []Payment, now time.Time) MonthlySeries {
	series := newSeries(now)
	for _, p := range payments {
		series.add(PaymentTime(p, now), Amount(p))
	}
	return series
}

// NewCustomerSeries counts customers by the month they joined.
func NewCustomerSeries(customers []Customer, now time.Time) MonthlySeries {
	series := newSeries(now)
	for _, c := range customers {
		series.add(CustomerTime(c, now), 1)
	}
	return series
}

// BuildMonthlySeries builds the revenue and new-customer series over the same
// window.
func BuildMonthlySeries(payments []Payment, customers []Customer, now time.Time) (revenue, newCustomers MonthlySeries) {
	return RevenueSeries(payments, now), NewCustomerSeries(customers, now)
}

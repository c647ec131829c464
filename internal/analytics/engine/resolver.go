package engine

import (
	"math"
	"time"

	"github.com/smallbiznis/ispdesk/pkg/docstore"
)

const (
	StatusActive  = "Active"
	StatusPending = "Pending"
)

// maxDueYear bounds computed due dates to what a YYYY-MM-DD date can hold.
const maxDueYear = 9999

// PaymentRow is the derived billing line of one customer.
type PaymentRow struct {
	Customer Customer `json:"customer"`
	Plan     *Plan    `json:"plan"`
	Amount   float64  `json:"amount"`
	// DueDate is "YYYY-MM-DD", or empty when it cannot be determined.
	DueDate string `json:"dueDate"`
	Status  string `json:"status"`
}

// PlanIndex looks plans up by name, the join key used by Customer.Plan.
type PlanIndex struct {
	byName map[string]*Plan
}

// NewPlanIndex indexes plans by name. A plan without a name is indexed by
// its id. The first plan wins when several share a name.
func NewPlanIndex(plans []Plan) PlanIndex {
	idx := PlanIndex{byName: make(map[string]*Plan, len(plans))}
	for i := range plans {
		key := plans[i].Name
		if key == "" {
			key = plans[i].ID
		}
		if key == "" {
			continue
		}
		if _, exists := idx.byName[key]; !exists {
			idx.byName[key] = &plans[i]
		}
	}
	return idx
}

// Lookup returns the plan named name, or nil. An empty name never matches.
func (idx PlanIndex) Lookup(name string) *Plan {
	if name == "" || idx.byName == nil {
		return nil
	}
	return idx.byName[name]
}

// Price is the matched plan price, 0 when nothing matches.
func (idx PlanIndex) Price(name string) float64 {
	if p := idx.Lookup(name); p != nil {
		return p.Price
	}
	return 0
}

// Cost is the matched plan cost, 0 when nothing matches or no cost is set.
func (idx PlanIndex) Cost(name string) float64 {
	if p := idx.Lookup(name); p != nil && p.Cost != nil {
		return *p.Cost
	}
	return 0
}

// NextDueDate returns midnight of now plus the plan's billing cycle, or nil
// when the cycle cannot produce a date. A nil plan uses the default cycle.
func NextDueDate(plan *Plan, now time.Time) *time.Time {
	cycle := defaultCycleDays
	if plan != nil && plan.BillingCycleDays != nil && *plan.BillingCycleDays != 0 {
		cycle = *plan.BillingCycleDays
	}
	if cycle < 0 || cycle == docstore.InvalidInt {
		return nil
	}
	// Bound before AddDate so huge cycles cannot overflow.
	if cycle > (maxDueYear-now.Year()+1)*366 {
		return nil
	}
	due := startOfDay(now.AddDate(0, 0, cycle))
	if due.Year() > maxDueYear {
		return nil
	}
	return &due
}

const defaultCycleDays = 30

// ResolvePayment derives amount, due date and status for one customer.
func ResolvePayment(c Customer, plans PlanIndex, now time.Time) PaymentRow {
	plan := plans.Lookup(c.Plan)
	row := PaymentRow{Customer: c, Plan: plan}
	if plan != nil {
		row.Amount = plan.Price
	}

	due := NextDueDate(plan, now)
	if c.Expiry != nil {
		expiry := c.Expiry.In(now.Location())
		due = &expiry
	}
	row.DueDate = FormatDate(due)
	row.Status = dueStatus(due, now)
	return row
}

// ResolvePayments resolves every customer in input order.
func ResolvePayments(customers []Customer, plans []Plan, now time.Time) []PaymentRow {
	idx := NewPlanIndex(plans)
	rows := make([]PaymentRow, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, ResolvePayment(c, idx, now))
	}
	return rows
}

func dueStatus(due *time.Time, now time.Time) string {
	if due == nil || due.Before(now) {
		return StatusPending
	}
	days := math.Ceil(due.Sub(now).Hours() / 24)
	if days <= PendingWindowDays {
		return StatusPending
	}
	return StatusActive
}

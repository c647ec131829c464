// Package engine derives the billing, retention and suggestion view-models of
// a shop from record snapshots.
//
// Every function is pure: it reads only its arguments, takes the reference
// instant explicitly and never fails. Degenerate records are absorbed by
// defaulting (0, now, "Unassigned", empty date) and are never dropped unless
// they fall outside a time window.
package engine

import (
	"time"

	campaigndomain "github.com/smallbiznis/ispdesk/internal/campaign/domain"
	customerdomain "github.com/smallbiznis/ispdesk/internal/customer/domain"
	paymentdomain "github.com/smallbiznis/ispdesk/internal/payment/domain"
	plandomain "github.com/smallbiznis/ispdesk/internal/plan/domain"
	ticketdomain "github.com/smallbiznis/ispdesk/internal/ticket/domain"
)

type (
	Customer = customerdomain.Customer
	Plan     = plandomain.Plan
	Payment  = paymentdomain.Payment
	Ticket   = ticketdomain.Ticket
	Campaign = campaigndomain.Campaign
)

const (
	// PendingWindowDays is how close a due date must be to count as pending.
	PendingWindowDays = 7
	// AtRiskDays is the look-ahead for at-risk customers.
	AtRiskDays = 30
	// DefaultReminderLeadDays is how far ahead expiry reminders look.
	DefaultReminderLeadDays = 10
	// DefaultDailyRevenueDays is the length of the dashboard revenue chart.
	DefaultDailyRevenueDays = 7

	UnassignedPlan = "Unassigned"
	NoPlan         = "-"

	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// Snapshot is the record set of one shop, read at approximately one instant.
type Snapshot struct {
	Customers []Customer
	Plans     []Plan
	Payments  []Payment
	Tickets   []Ticket
	Campaigns []Campaign
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

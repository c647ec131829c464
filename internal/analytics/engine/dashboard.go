package engine

import (
	"strings"
	"time"
)

const UptimeLabel = "99.9%"

// Stats are the dashboard headline cards.
type Stats struct {
	TotalCustomers int     `json:"totalCustomers"`
	OpenTickets    int     `json:"openTickets"`
	MonthlyRevenue float64 `json:"monthlyRevenue"`
	Uptime         string  `json:"uptime"`
}

// DayTotal is one point of the daily revenue chart.
type DayTotal struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// ChannelStats sums queued messages per campaign channel.
type ChannelStats struct {
	Email    int `json:"email"`
	SMS      int `json:"sms"`
	WhatsApp int `json:"whatsapp"`
}

// IsOpenTicket treats every status other than "closed" as open.
func IsOpenTicket(t Ticket) bool {
	return !strings.EqualFold(strings.TrimSpace(t.Status), "closed")
}

// DashboardStats counts monthly revenue from settled payments only: a payment
// without PaidAt is not revenue yet.
func DashboardStats(s Snapshot, now time.Time) Stats {
	stats := Stats{
		TotalCustomers: len(s.Customers),
		Uptime:         UptimeLabel,
	}
	for _, t := range s.Tickets {
		if IsOpenTicket(t) {
			stats.OpenTickets++
		}
	}
	current := MonthKey(now)
	for _, p := range s.Payments {
		if p.PaidAt != nil && MonthKey(p.PaidAt.In(now.Location())) == current {
			stats.MonthlyRevenue += Amount(p)
		}
	}
	return stats
}

// DailyRevenue totals payments per calendar day for the last days days,
// oldest first, today last. Payments outside the window are dropped.
func DailyRevenue(payments []Payment, now time.Time, days int) []DayTotal {
	if days <= 0 {
		days = DefaultDailyRevenueDays
	}
	today := startOfDay(now)
	out := make([]DayTotal, days)
	pos := make(map[string]int, days)
	for i := 0; i < days; i++ {
		key := today.AddDate(0, 0, i-(days-1)).Format(dateLayout)
		out[i] = DayTotal{Date: key}
		pos[key] = i
	}
	for _, p := range payments {
		key := PaymentTime(p, now).Format(dateLayout)
		if i, ok := pos[key]; ok {
			out[i].Amount += Amount(p)
		}
	}
	return out
}

// MessagingStats sums campaign counts for the known channels. Other channels
// are ignored.
func MessagingStats(campaigns []Campaign) ChannelStats {
	var stats ChannelStats
	for _, c := range campaigns {
		switch strings.ToLower(strings.TrimSpace(c.Channel)) {
		case "email":
			stats.Email += c.Count
		case "sms":
			stats.SMS += c.Count
		case "whatsapp":
			stats.WhatsApp += c.Count
		}
	}
	return stats
}

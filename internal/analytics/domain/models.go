package domain

import (
	activitydomain "github.com/smallbiznis/ispdesk/internal/activity/domain"
	"github.com/smallbiznis/ispdesk/internal/analytics/engine"
	settingsdomain "github.com/smallbiznis/ispdesk/internal/settings/domain"
)

type DashboardView struct {
	Stats          engine.Stats              `json:"stats"`
	DailyRevenue   []engine.DayTotal         `json:"dailyRevenue"`
	RecentActivity []activitydomain.Activity `json:"recentActivity"`
}

// PaymentLine is a derived billing row with its display labels.
type PaymentLine struct {
	CustomerID   string  `json:"customerId"`
	CustomerName string  `json:"customerName"`
	Plan         string  `json:"plan"`
	Amount       float64 `json:"amount"`
	AmountLabel  string  `json:"amountLabel"`
	DueDate      string  `json:"dueDate"`
	Status       string  `json:"status"`
	Badge        string  `json:"badge"`
}

type PaymentsView struct {
	Rows     []PaymentLine           `json:"rows"`
	Settings settingsdomain.Settings `json:"settings"`
}

type AnalyticsView struct {
	Revenue      engine.MonthlySeries    `json:"revenue"`
	NewCustomers engine.MonthlySeries    `json:"newCustomers"`
	Distribution []engine.PlanCount      `json:"distribution"`
	Retention    engine.RetentionBuckets `json:"retention"`
}

type SuggestionsView struct {
	Summary     engine.SuggestionSummary `json:"summary"`
	Suggestions engine.Suggestions       `json:"suggestions"`
	Text        string                   `json:"text"`
	Settings    settingsdomain.Settings  `json:"settings"`
}

type Intent string

const (
	IntentGreeting    Intent = "greeting"
	IntentGuide       Intent = "guide"
	IntentSuggestions Intent = "suggestions"
	IntentCustomer    Intent = "add_customer"
	IntentPlan        Intent = "create_plan"
	IntentFallback    Intent = "fallback"
)

type AssistantReply struct {
	Intent Intent `json:"intent"`
	Reply  string `json:"reply"`
}

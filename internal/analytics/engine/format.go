package engine

import (
	"math"
	"strings"
	"time"

	settingsdomain "github.com/smallbiznis/ispdesk/internal/settings/domain"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Settings = settingsdomain.Settings

// FallbackCurrencySymbol is used when the configured code is not ISO 4217.
const FallbackCurrencySymbol = "₹"

var printer = message.NewPrinter(language.English)

// FormatCurrency renders amount with the symbol of the shop currency, grouped
// thousands and two decimals, e.g. "₹1,234.50". Blank currency means INR.
func FormatCurrency(amount float64, settings Settings) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	code := strings.ToUpper(strings.TrimSpace(settings.Currency))
	if code == "" {
		code = settingsdomain.DefaultCurrency
	}

	symbol := FallbackCurrencySymbol
	if unit, err := currency.ParseISO(code); err == nil {
		symbol = printer.Sprint(currency.Symbol(unit))
	}

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + symbol + printer.Sprintf("%.2f", amount)
}

// FormatNumber renders n with grouped thousands.
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatDate renders t as "YYYY-MM-DD" in its own location, "" for nil.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// StatusBadge maps a payment, customer or ticket status label to its badge
// class, "" when the label is unknown.
func StatusBadge(label string) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "paid", "active":
		return "active"
	case "pending":
		return "pending"
	case "failed":
		return "failed"
	case "refunded":
		return "refunded"
	case "in progress":
		return "in-progress"
	case "resolved":
		return "resolved"
	case "closed":
		return "closed"
	default:
		return ""
	}
}

// PriorityBadge maps a ticket priority to its badge class, "low" by default.
func PriorityBadge(label string) string {
	switch m := strings.ToLower(strings.TrimSpace(label)); m {
	case "high", "medium", "critical":
		return m
	default:
		return "low"
	}
}

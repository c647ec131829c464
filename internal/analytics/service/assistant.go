package service

import (
	"regexp"
	"strings"

	"github.com/smallbiznis/ispdesk/internal/analytics/domain"
)

var (
	guidePattern       = regexp.MustCompile(`help|tour`)
	suggestionsPattern = regexp.MustCompile(`analy[sz]e|analysis|report|suggest|insight`)
	customerPattern    = regexp.MustCompile(`add customer|new customer`)
	planPattern        = regexp.MustCompile(`create plan|new plan`)
)

const (
	greetingReply = "I can help you with:\n" +
		"- Adding customers and assigning plans\n" +
		"- Creating plans and pricing\n" +
		"- Revenue, churn and retention analytics\n" +
		"- Payment reminders and collections\n" +
		"Welcome! What are you trying to do today? (e.g., add customer, create plan, analyze revenue)"

	guideReply = "Great! Here's a quick guide:\n" +
		"1. Customers → Add Customer to onboard a subscriber (pick a Plan).\n" +
		"2. Plans → Create Plan to add pricing and speed tiers.\n" +
		"3. Payments → Auto-derived from plans and expiries, no manual entry needed.\n" +
		"4. Analytics → Track revenue trends, new customers, and churn risk."

	customerReply = "Go to Customers → Add Customer. You'll select a plan and the system will compute payment due dates automatically."
	planReply     = "Go to Plans → Create Plan. Include name, price, speed. The price drives billing in Payments."
	fallbackReply = `I can generate tailored suggestions from your data. Type "analyze" to proceed.`
)

// ClassifyIntent matches a chat message against the keyword intents, first
// match wins. A blank message is a greeting.
func ClassifyIntent(message string) domain.Intent {
	t := strings.ToLower(strings.TrimSpace(message))
	switch {
	case t == "":
		return domain.IntentGreeting
	case guidePattern.MatchString(t):
		return domain.IntentGuide
	case suggestionsPattern.MatchString(t):
		return domain.IntentSuggestions
	case customerPattern.MatchString(t):
		return domain.IntentCustomer
	case planPattern.MatchString(t):
		return domain.IntentPlan
	default:
		return domain.IntentFallback
	}
}

func staticReply(intent domain.Intent) string {
	switch intent {
	case domain.IntentGreeting:
		return greetingReply
	case domain.IntentGuide:
		return guideReply
	case domain.IntentCustomer:
		return customerReply
	case domain.IntentPlan:
		return planReply
	default:
		return fallbackReply
	}
}

package engine

import (
	"fmt"
	"strings"
)

// Suggestions is the rendered recommendation block.
type Suggestions struct {
	Title           string   `json:"title"`
	Headlines       []string `json:"headlines"`
	Recommendations []string `json:"recommendations"`
}

// RenderSuggestions formats a summary. Amounts use the shop currency.
func RenderSuggestions(summary SuggestionSummary, settings Settings) Suggestions {
	margin := fmt.Sprintf("Monthly Margin: %d%%", summary.MarginPercent)
	if summary.PlanCount > 0 {
		margin += " (assumes plan cost set on plan)"
	}

	return Suggestions{
		Title: "Data-driven Suggestions",
		Headlines: []string{
			"ARPU: " + FormatCurrency(summary.ARPU, settings),
			fmt.Sprintf("Top Plan: %s (%d active)", summary.TopPlan, summary.TopPlanCount),
			fmt.Sprintf("Retention: Retained %d, At Risk %d, Churned %d",
				summary.Retention.Retained, summary.Retention.AtRisk, summary.Retention.Churned),
			margin,
			fmt.Sprintf("Upsell Opportunities: %d customers below median plan price", summary.Upsell),
		},
		Recommendations: []string{
			fmt.Sprintf("Target at-risk customers with reminders and limited-time discounts on %s.", summary.TopPlan),
			fmt.Sprintf("Upsell %d customers on low-tier plans to higher tiers to grow ARPU.", summary.Upsell),
			"Review plan costs to improve margin; aim for 60%+ gross margin.",
			"Automate reminders 7 days before expiry to reduce churn.",
		},
	}
}

// Text joins the block into plain text: headlines as a bullet list, then the
// numbered recommendations.
func (s Suggestions) Text() string {
	var b strings.Builder
	b.WriteString(s.Title)
	b.WriteString("\n")
	for _, h := range s.Headlines {
		b.WriteString("- ")
		b.WriteString(h)
		b.WriteString("\n")
	}
	b.WriteString("Recommendations\n")
	for i, r := range s.Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r)
	}
	return b.String()
}

package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/ispdesk/internal/analytics/engine"
)

// Service computes the read-only views of the shop in the context.
type Service interface {
	Dashboard(context.Context) (DashboardView, error)
	Payments(context.Context) (PaymentsView, error)
	Analytics(context.Context) (AnalyticsView, error)
	Suggestions(context.Context) (SuggestionsView, error)
	Messaging(context.Context) (engine.ChannelStats, error)
	Assistant(ctx context.Context, message string) (AssistantReply, error)
}

var ErrInvalidShop = errors.New("invalid_shop")

package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/ispdesk/internal/activity"
	"github.com/smallbiznis/ispdesk/internal/analytics"
	"github.com/smallbiznis/ispdesk/internal/cache"
	"github.com/smallbiznis/ispdesk/internal/campaign"
	"github.com/smallbiznis/ispdesk/internal/clock"
	"github.com/smallbiznis/ispdesk/internal/config"
	"github.com/smallbiznis/ispdesk/internal/customer"
	"github.com/smallbiznis/ispdesk/internal/migration"
	"github.com/smallbiznis/ispdesk/internal/observability"
	"github.com/smallbiznis/ispdesk/internal/payment"
	"github.com/smallbiznis/ispdesk/internal/plan"
	"github.com/smallbiznis/ispdesk/internal/reminder"
	"github.com/smallbiznis/ispdesk/internal/report"
	"github.com/smallbiznis/ispdesk/internal/scheduler"
	"github.com/smallbiznis/ispdesk/internal/server"
	"github.com/smallbiznis/ispdesk/internal/settings"
	"github.com/smallbiznis/ispdesk/internal/shop"
	"github.com/smallbiznis/ispdesk/internal/snapshot"
	"github.com/smallbiznis/ispdesk/internal/store"
	"github.com/smallbiznis/ispdesk/internal/ticket"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		store.Module,
		migration.Module,
		clock.Module,
		cache.Module,
		snapshot.Module,

		// Record services
		shop.Module,
		customer.Module,
		plan.Module,
		payment.Module,
		ticket.Module,
		campaign.Module,
		activity.Module,
		reminder.Module,
		settings.Module,

		// Views
		analytics.Module,
		report.Module,
		server.Module,

		scheduler.Module,
		fx.Invoke(scheduler.Run),
	)
	app.Run()
}

func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.SnowflakeNode)
}

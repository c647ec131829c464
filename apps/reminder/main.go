package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/ispdesk/internal/cache"
	"github.com/smallbiznis/ispdesk/internal/clock"
	"github.com/smallbiznis/ispdesk/internal/config"
	"github.com/smallbiznis/ispdesk/internal/customer"
	"github.com/smallbiznis/ispdesk/internal/migration"
	"github.com/smallbiznis/ispdesk/internal/observability"
	"github.com/smallbiznis/ispdesk/internal/reminder"
	"github.com/smallbiznis/ispdesk/internal/scheduler"
	"github.com/smallbiznis/ispdesk/internal/shop"
	"github.com/smallbiznis/ispdesk/internal/store"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		store.Module,
		migration.Module,
		clock.Module,
		cache.Module,

		// Domain services required by scheduler
		shop.Module,
		customer.Module,
		reminder.Module,

		// No server module!
		scheduler.Module,
		fx.Invoke(scheduler.Run),
	)
	app.Run()
}

func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.SnowflakeNode)
}

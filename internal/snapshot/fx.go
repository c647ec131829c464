package snapshot

import (
	"github.com/redis/go-redis/v9"
	"github.com/smallbiznis/ispdesk/internal/analytics/engine"
	"github.com/smallbiznis/ispdesk/internal/cache"
	"github.com/smallbiznis/ispdesk/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const redisPrefix = "ispdesk:snapshot:"

var Module = fx.Module("snapshot",
	fx.Provide(NewCache),
	fx.Provide(NewLoader),
	fx.Provide(
		func(l *Loader) Invalidator { return l },
		func(l *Loader) Source { return l },
	),
)

// NewCache shares snapshots through Redis when configured and keeps them in
// process memory otherwise.
func NewCache(client *redis.Client, clk clock.Clock, log *zap.Logger) cache.Cache[string, engine.Snapshot] {
	if client != nil {
		return cache.NewRedisCache[engine.Snapshot](client, redisPrefix, log)
	}
	return cache.NewTTLCache[string, engine.Snapshot]().WithNow(clk.Now)
}

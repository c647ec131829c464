package clock

import (
	"time"

	"github.com/smallbiznis/ispdesk/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("clock",
	fx.Provide(func(cfg config.Config, log *zap.Logger) Clock {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			log.Warn("unknown timezone, falling back to UTC", zap.String("timezone", cfg.Timezone), zap.Error(err))
			loc = time.UTC
		}
		return SystemClock{Location: loc}
	}),
)

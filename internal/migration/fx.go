package migration

import (
	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(b *docstore.Backend, log *zap.Logger) error {
		if b.Kind != docstore.BackendSQL {
			log.Info("schema migrations skipped", zap.String("backend", b.Kind))
			return nil
		}
		return Migrate(b.DB)
	}),
)

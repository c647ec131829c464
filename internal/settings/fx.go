package settings

import (
	"github.com/smallbiznis/ispdesk/internal/settings/domain"
	"github.com/smallbiznis/ispdesk/internal/settings/service"
	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"go.uber.org/fx"
)

var Module = fx.Module("settings.service",
	fx.Provide(NewRepository),
	fx.Provide(service.New),
)

func NewRepository(b *docstore.Backend) domain.Repository {
	return docstore.For[domain.Settings](b, domain.CollectionName, domain.FromFields)
}

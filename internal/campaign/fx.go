package campaign

import (
	"github.com/smallbiznis/ispdesk/internal/campaign/domain"
	"github.com/smallbiznis/ispdesk/internal/campaign/service"
	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"go.uber.org/fx"
)

var Module = fx.Module("campaign.service",
	fx.Provide(NewRepository),
	fx.Provide(service.New),
)

func NewRepository(b *docstore.Backend) domain.Repository {
	return docstore.For[domain.Campaign](b, domain.CollectionName, domain.FromFields)
}

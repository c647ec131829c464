package plan

import (
	"github.com/smallbiznis/ispdesk/internal/plan/domain"
	"github.com/smallbiznis/ispdesk/internal/plan/service"
	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"go.uber.org/fx"
)

var Module = fx.Module("plan.service",
	fx.Provide(NewRepository),
	fx.Provide(service.New),
)

func NewRepository(b *docstore.Backend) domain.Repository {
	return docstore.For[domain.Plan](b, domain.CollectionName, domain.FromFields)
}

package activity

import (
	"github.com/smallbiznis/ispdesk/internal/activity/domain"
	"github.com/smallbiznis/ispdesk/internal/activity/service"
	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"go.uber.org/fx"
)

var Module = fx.Module("activity.service",
	fx.Provide(NewRepository),
	fx.Provide(service.New),
)

func NewRepository(b *docstore.Backend) domain.Repository {
	return docstore.For[domain.Activity](b, domain.CollectionName, domain.FromFields)
}

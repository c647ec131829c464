package reminder

import (
	"github.com/smallbiznis/ispdesk/internal/reminder/domain"
	"github.com/smallbiznis/ispdesk/internal/reminder/service"
	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"go.uber.org/fx"
)

var Module = fx.Module("reminder.service",
	fx.Provide(NewRepository),
	fx.Provide(service.New),
)

func NewRepository(b *docstore.Backend) domain.Repository {
	return docstore.For[domain.Reminder](b, domain.CollectionName, domain.FromFields)
}

package ticket

import (
	"github.com/smallbiznis/ispdesk/internal/ticket/domain"
	"github.com/smallbiznis/ispdesk/internal/ticket/service"
	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"go.uber.org/fx"
)

var Module = fx.Module("ticket.service",
	fx.Provide(NewRepository),
	fx.Provide(service.New),
)

func NewRepository(b *docstore.Backend) domain.Repository {
	return docstore.For[domain.Ticket](b, domain.CollectionName, domain.FromFields)
}

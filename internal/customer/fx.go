package customer

import (
	"github.com/smallbiznis/ispdesk/internal/customer/domain"
	"github.com/smallbiznis/ispdesk/internal/customer/service"
	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(NewRepository),
	fx.Provide(service.New),
)

func NewRepository(b *docstore.Backend) domain.Repository {
	return docstore.For[domain.Customer](b, domain.CollectionName, domain.FromFields)
}

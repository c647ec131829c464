package payment

import (
	"github.com/smallbiznis/ispdesk/internal/payment/domain"
	"github.com/smallbiznis/ispdesk/internal/payment/service"
	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(NewRepository),
	fx.Provide(service.New),
)

func NewRepository(b *docstore.Backend) domain.Repository {
	return docstore.For[domain.Payment](b, domain.CollectionName, domain.FromFields)
}

package shop

import (
	"github.com/smallbiznis/ispdesk/internal/shop/domain"
	"github.com/smallbiznis/ispdesk/internal/shop/service"
	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"go.uber.org/fx"
)

var Module = fx.Module("shop.service",
	fx.Provide(NewRepository),
	fx.Provide(service.New),
)

func NewRepository(b *docstore.Backend) domain.Repository {
	return docstore.For[domain.Shop](b, domain.CollectionName, domain.FromFields)
}

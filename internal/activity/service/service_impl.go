package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/ispdesk/internal/activity/domain"
	"github.com/smallbiznis/ispdesk/internal/clock"
	"github.com/smallbiznis/ispdesk/internal/config"
	"github.com/smallbiznis/ispdesk/internal/shopcontext"
	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Repo      domain.Repository
	Dashboard *config.DashboardConfigHolder `optional:"true"`
}

type Service struct {
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      domain.Repository
	dashboard *config.DashboardConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		log:       p.Log.Named("activity.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		dashboard: p.Dashboard,
	}
}

func (s *Service) Record(ctx context.Context, req domain.RecordActivityRequest) (domain.Activity, error) {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return domain.Activity{}, domain.ErrInvalidShop
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Activity{}, domain.ErrInvalidTitle
	}
	icon := strings.TrimSpace(req.Icon)
	if icon == "" {
		icon = domain.DefaultIcon
	}

	now := s.clock.Now()
	item := domain.Activity{
		ID:        s.genID.Generate().String(),
		ShopID:    shopID,
		Title:     title,
		Icon:      icon,
		Kind:      strings.TrimSpace(req.Kind),
		CreatedAt: &now,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return domain.Activity{}, err
	}
	return item, nil
}

func (s *Service) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidShop
	}
	if limit <= 0 {
		limit = s.dashboard.Get().RecentActivityLimit
	}
	if limit <= 0 {
		limit = domain.DefaultRecentLimit
	}

	return s.repo.List(ctx,
		docstore.Where("shopId", shopID),
		docstore.OrderBy("createdAt", docstore.Desc),
		docstore.Limit(limit),
	)
}

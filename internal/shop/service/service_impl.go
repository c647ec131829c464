package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/ispdesk/internal/clock"
	"github.com/smallbiznis/ispdesk/internal/shop/domain"
	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("shop.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateShopRequest) (domain.Shop, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Shop{}, domain.ErrInvalidName
	}

	id := s.genID.Generate().String()
	base := slug.Make(name)
	if base == "" {
		base = "shop"
	}

	now := s.clock.Now()
	shop := domain.Shop{
		ID:        id,
		Name:      name,
		Slug:      base,
		OwnerUID:  strings.TrimSpace(req.OwnerUID),
		CreatedAt: &now,
	}

	err := s.repo.Create(ctx, shop)
	if errors.Is(err, docstore.ErrAlreadyExists) {
		// Slug taken: suffix the tail of the id.
		shop.Slug = base + "-" + id[len(id)-6:]
		err = s.repo.Create(ctx, shop)
	}
	if err != nil {
		return domain.Shop{}, fmt.Errorf("create shop: %w", err)
	}

	s.log.Info("shop created", zap.String("shop_id", shop.ID), zap.String("slug", shop.Slug))
	return shop, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Shop, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Shop{}, domain.ErrInvalidID
	}
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return domain.Shop{}, domain.ErrNotFound
		}
		return domain.Shop{}, fmt.Errorf("get shop: %w", err)
	}
	return item, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Shop, error) {
	items, err := s.repo.List(ctx, docstore.OrderBy("createdAt", docstore.Asc))
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	return items, nil
}

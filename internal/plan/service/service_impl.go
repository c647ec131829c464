package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	activitydomain "github.com/smallbiznis/ispdesk/internal/activity/domain"
	"github.com/smallbiznis/ispdesk/internal/clock"
	"github.com/smallbiznis/ispdesk/internal/plan/domain"
	"github.com/smallbiznis/ispdesk/internal/shopcontext"
	"github.com/smallbiznis/ispdesk/internal/snapshot"
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
	Activity  activitydomain.Service
	Snapshots snapshot.Invalidator
}

type Service struct {
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      domain.Repository
	activity  activitydomain.Service
	snapshots snapshot.Invalidator
}

func New(p Params) domain.Service {
	return &Service{
		log:       p.Log.Named("plan.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		activity:  p.Activity,
		snapshots: p.Snapshots,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePlanRequest) (domain.Plan, error) {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return domain.Plan{}, domain.ErrInvalidShop
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Plan{}, domain.ErrInvalidName
	}
	if err := validateAmounts(&req.Price, req.Cost, req.BillingCycleDays); err != nil {
		return domain.Plan{}, err
	}

	now := s.clock.Now()
	plan := domain.Plan{
		ID:               s.genID.Generate().String(),
		ShopID:           shopID,
		Name:             name,
		Price:            req.Price,
		Cost:             req.Cost,
		Speed:            strings.TrimSpace(req.Speed),
		Data:             strings.TrimSpace(req.Data),
		Support:          strings.TrimSpace(req.Support),
		BillingCycleDays: req.BillingCycleDays,
		CreatedAt:        &now,
		UpdatedAt:        &now,
	}

	if err := s.repo.Create(ctx, plan); err != nil {
		return domain.Plan{}, fmt.Errorf("create plan: %w", err)
	}

	s.afterWrite(ctx, shopID, "Plan created: "+plan.Name, "fas fa-layer-group")
	return plan, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Plan, error) {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidShop
	}

	items, err := s.repo.List(ctx,
		docstore.Where("shopId", shopID),
		docstore.OrderBy("name", docstore.Asc),
	)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetPlanRequest) (domain.Plan, error) {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return domain.Plan{}, domain.ErrInvalidShop
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return domain.Plan{}, domain.ErrInvalidID
	}
	return s.find(ctx, shopID, id)
}

func (s *Service) Update(ctx context.Context, req domain.UpdatePlanRequest) (domain.Plan, error) {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return domain.Plan{}, domain.ErrInvalidShop
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return domain.Plan{}, domain.ErrInvalidID
	}
	current, err := s.find(ctx, shopID, id)
	if err != nil {
		return domain.Plan{}, err
	}
	if err := validateAmounts(req.Price, req.Cost, req.BillingCycleDays); err != nil {
		return domain.Plan{}, err
	}

	fields := docstore.Fields{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Plan{}, domain.ErrInvalidName
		}
		fields["name"] = name
		current.Name = name
	}
	if req.Price != nil {
		fields["price"] = *req.Price
		current.Price = *req.Price
	}
	if req.Cost != nil {
		fields["cost"] = *req.Cost
		current.Cost = req.Cost
	}
	if req.Speed != nil {
		fields["speed"] = strings.TrimSpace(*req.Speed)
		current.Speed = strings.TrimSpace(*req.Speed)
	}
	if req.Data != nil {
		fields["data"] = strings.TrimSpace(*req.Data)
		current.Data = strings.TrimSpace(*req.Data)
	}
	if req.Support != nil {
		fields["support"] = strings.TrimSpace(*req.Support)
		current.Support = strings.TrimSpace(*req.Support)
	}
	if req.BillingCycleDays != nil {
		fields["billingCycleDays"] = *req.BillingCycleDays
		current.BillingCycleDays = req.BillingCycleDays
	}
	if len(fields) == 0 {
		return current, nil
	}

	now := s.clock.Now()
	fields["updatedAt"] = now
	current.UpdatedAt = &now

	if err := s.repo.Update(ctx, id, fields); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return domain.Plan{}, domain.ErrNotFound
		}
		return domain.Plan{}, fmt.Errorf("update plan: %w", err)
	}

	s.afterWrite(ctx, shopID, "Plan updated: "+current.Name, "fas fa-layer-group")
	return current, nil
}

func (s *Service) Delete(ctx context.Context, req domain.GetPlanRequest) error {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return domain.ErrInvalidShop
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return domain.ErrInvalidID
	}
	current, err := s.find(ctx, shopID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete plan: %w", err)
	}

	s.afterWrite(ctx, shopID, "Plan removed: "+current.Name, "fas fa-layer-group")
	return nil
}

func (s *Service) find(ctx context.Context, shopID, id string) (domain.Plan, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return domain.Plan{}, domain.ErrNotFound
		}
		return domain.Plan{}, fmt.Errorf("get plan: %w", err)
	}
	if item.ShopID != shopID {
		return domain.Plan{}, domain.ErrNotFound
	}
	return item, nil
}

func (s *Service) afterWrite(ctx context.Context, shopID, title, icon string) {
	s.snapshots.Invalidate(shopID)
	if _, err := s.activity.Record(ctx, activitydomain.RecordActivityRequest{
		Title: title,
		Icon:  icon,
		Kind:  activitydomain.KindPlan,
	}); err != nil {
		s.log.Warn("failed to record activity", zap.String("shop_id", shopID), zap.Error(err))
	}
}

func validateAmounts(price, cost *float64, cycle *int) error {
	if price != nil && *price < 0 {
		return domain.ErrInvalidPrice
	}
	if cost != nil && *cost < 0 {
		return domain.ErrInvalidCost
	}
	if cycle != nil && *cycle <= 0 {
		return domain.ErrInvalidCycle
	}
	return nil
}

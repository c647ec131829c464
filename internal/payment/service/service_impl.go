package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	activitydomain "github.com/smallbiznis/ispdesk/internal/activity/domain"
	"github.com/smallbiznis/ispdesk/internal/analytics/engine"
	"github.com/smallbiznis/ispdesk/internal/clock"
	customerdomain "github.com/smallbiznis/ispdesk/internal/customer/domain"
	"github.com/smallbiznis/ispdesk/internal/payment/domain"
	plandomain "github.com/smallbiznis/ispdesk/internal/plan/domain"
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
	Customers customerdomain.Repository
	Plans     plandomain.Repository
	Activity  activitydomain.Service
	Snapshots snapshot.Invalidator
}

type Service struct {
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      domain.Repository
	customers customerdomain.Repository
	plans     plandomain.Repository
	activity  activitydomain.Service
	snapshots snapshot.Invalidator
}

func New(p Params) domain.Service {
	return &Service{
		log:       p.Log.Named("payment.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		customers: p.Customers,
		plans:     p.Plans,
		activity:  p.Activity,
		snapshots: p.Snapshots,
	}
}

func (s *Service) Record(ctx context.Context, req domain.RecordPaymentRequest) (domain.Payment, error) {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return domain.Payment{}, domain.ErrInvalidShop
	}

	method, err := normalizeMethod(req.Method)
	if err != nil {
		return domain.Payment{}, err
	}
	status, err := normalizeStatus(req.Status)
	if err != nil {
		return domain.Payment{}, err
	}
	if req.Amount != nil && *req.Amount < 0 {
		return domain.Payment{}, domain.ErrInvalidAmount
	}

	customerID := strings.TrimSpace(req.CustomerID)
	if customerID == "" {
		return domain.Payment{}, domain.ErrInvalidCustomer
	}
	customer, err := s.customers.Get(ctx, customerID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return domain.Payment{}, domain.ErrInvalidCustomer
		}
		return domain.Payment{}, fmt.Errorf("get customer: %w", err)
	}
	if customer.ShopID != shopID {
		return domain.Payment{}, domain.ErrInvalidCustomer
	}

	var plan *plandomain.Plan
	if planID := strings.TrimSpace(req.PlanID); planID != "" {
		found, err := s.plans.Get(ctx, planID)
		if err != nil {
			if errors.Is(err, docstore.ErrNotFound) {
				return domain.Payment{}, domain.ErrInvalidPlan
			}
			return domain.Payment{}, fmt.Errorf("get plan: %w", err)
		}
		if found.ShopID != shopID {
			return domain.Payment{}, domain.ErrInvalidPlan
		}
		plan = &found
	}

	now := s.clock.Now()
	payment := domain.Payment{
		ID:           s.genID.Generate().String(),
		ShopID:       shopID,
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Method:       method,
		Status:       status,
		PaidAt:       req.PaidAt,
		DueDate:      req.DueDate,
		CreatedAt:    &now,
	}
	switch {
	case req.Amount != nil:
		payment.Amount = *req.Amount
	case plan != nil:
		payment.Amount = plan.Price
	}
	if plan != nil {
		payment.PlanID = plan.ID
		if payment.DueDate == nil {
			payment.DueDate = engine.NextDueDate(plan, now)
		}
	}
	if payment.Status == domain.StatusPaid && payment.PaidAt == nil {
		payment.PaidAt = &now
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		return domain.Payment{}, fmt.Errorf("record payment: %w", err)
	}

	s.afterWrite(ctx, shopID, fmt.Sprintf("Payment recorded for %s", customer.Name), "fas fa-credit-card")
	return payment, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Payment, error) {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidShop
	}

	items, err := s.repo.List(ctx,
		docstore.Where("shopId", shopID),
		docstore.OrderBy("createdAt", docstore.Desc),
	)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return items, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return domain.ErrInvalidShop
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrInvalidID
	}

	item, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get payment: %w", err)
	}
	if item.ShopID != shopID {
		return domain.ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete payment: %w", err)
	}

	s.afterWrite(ctx, shopID, fmt.Sprintf("Payment removed for %s", item.CustomerName), "fas fa-credit-card")
	return nil
}

func (s *Service) afterWrite(ctx context.Context, shopID, title, icon string) {
	s.snapshots.Invalidate(shopID)
	if _, err := s.activity.Record(ctx, activitydomain.RecordActivityRequest{
		Title: title,
		Icon:  icon,
		Kind:  activitydomain.KindPayment,
	}); err != nil {
		s.log.Warn("failed to record activity", zap.String("shop_id", shopID), zap.Error(err))
	}
}

func normalizeMethod(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "cash":
		return domain.MethodCash, nil
	case "card":
		return domain.MethodCard, nil
	case "upi":
		return domain.MethodUPI, nil
	default:
		return "", domain.ErrInvalidMethod
	}
}

func normalizeStatus(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "pending":
		return domain.StatusPending, nil
	case "paid":
		return domain.StatusPaid, nil
	case "failed":
		return domain.StatusFailed, nil
	default:
		return "", domain.ErrInvalidStatus
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	activitydomain "github.com/smallbiznis/ispdesk/internal/activity/domain"
	"github.com/smallbiznis/ispdesk/internal/clock"
	"github.com/smallbiznis/ispdesk/internal/customer/domain"
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
		log:       p.Log.Named("customer.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		activity:  p.Activity,
		snapshots: p.Snapshots,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return domain.Customer{}, domain.ErrInvalidShop
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return domain.Customer{}, err
	}
	status, err := normalizeStatus(req.Status)
	if err != nil {
		return domain.Customer{}, err
	}
	if req.LastPaymentAmount < 0 {
		return domain.Customer{}, domain.ErrInvalidAmount
	}

	now := s.clock.Now()
	customer := domain.Customer{
		ID:                s.genID.Generate().String(),
		ShopID:            shopID,
		Name:              name,
		Email:             email,
		Plan:              strings.TrimSpace(req.Plan),
		Status:            status,
		LastPaymentAmount: req.LastPaymentAmount,
		Expiry:            req.Expiry,
		CreatedAt:         &now,
		UpdatedAt:         &now,
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	s.afterWrite(ctx, shopID, "New customer added: "+customer.Name, "fas fa-user-plus")
	return customer, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidShop
	}

	items, err := s.repo.List(ctx,
		docstore.Where("shopId", shopID),
		docstore.OrderBy("name", docstore.Asc),
	)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetCustomerRequest) (domain.Customer, error) {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return domain.Customer{}, domain.ErrInvalidShop
	}
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Customer{}, err
	}
	return s.find(ctx, shopID, id)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateCustomerRequest) (domain.Customer, error) {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return domain.Customer{}, domain.ErrInvalidShop
	}
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Customer{}, err
	}
	current, err := s.find(ctx, shopID, id)
	if err != nil {
		return domain.Customer{}, err
	}

	fields := docstore.Fields{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Customer{}, domain.ErrInvalidName
		}
		fields["name"] = name
		current.Name = name
	}
	if req.Email != nil {
		email, err := normalizeEmail(*req.Email)
		if err != nil {
			return domain.Customer{}, err
		}
		fields["email"] = email
		current.Email = email
	}
	if req.Plan != nil {
		fields["plan"] = strings.TrimSpace(*req.Plan)
		current.Plan = strings.TrimSpace(*req.Plan)
	}
	if req.Status != nil {
		status, err := normalizeStatus(*req.Status)
		if err != nil {
			return domain.Customer{}, err
		}
		fields["status"] = status
		current.Status = status
	}
	if req.LastPaymentAmount != nil {
		if *req.LastPaymentAmount < 0 {
			return domain.Customer{}, domain.ErrInvalidAmount
		}
		fields["lastPaymentAmount"] = *req.LastPaymentAmount
		current.LastPaymentAmount = *req.LastPaymentAmount
	}
	switch {
	case req.ClearExpiry:
		fields["expiry"] = nil
		current.Expiry = nil
	case req.Expiry != nil:
		fields["expiry"] = *req.Expiry
		current.Expiry = req.Expiry
	}
	if len(fields) == 0 {
		return current, nil
	}

	now := s.clock.Now()
	fields["updatedAt"] = now
	current.UpdatedAt = &now

	if err := s.repo.Update(ctx, id, fields); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return domain.Customer{}, domain.ErrNotFound
		}
		return domain.Customer{}, fmt.Errorf("update customer: %w", err)
	}

	s.afterWrite(ctx, shopID, "Customer updated: "+current.Name, "fas fa-user-edit")
	return current, nil
}

func (s *Service) Delete(ctx context.Context, req domain.GetCustomerRequest) error {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return domain.ErrInvalidShop
	}
	id, err := parseID(req.ID)
	if err != nil {
		return err
	}
	current, err := s.find(ctx, shopID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete customer: %w", err)
	}

	s.afterWrite(ctx, shopID, "Customer removed: "+current.Name, "fas fa-user-minus")
	return nil
}

// find loads a customer of the shop. Records of other shops are reported as
// missing.
func (s *Service) find(ctx context.Context, shopID, id string) (domain.Customer, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return domain.Customer{}, domain.ErrNotFound
		}
		return domain.Customer{}, fmt.Errorf("get customer: %w", err)
	}
	if item.ShopID != shopID {
		return domain.Customer{}, domain.ErrNotFound
	}
	return item, nil
}

func (s *Service) afterWrite(ctx context.Context, shopID, title, icon string) {
	s.snapshots.Invalidate(shopID)
	if _, err := s.activity.Record(ctx, activitydomain.RecordActivityRequest{
		Title: title,
		Icon:  icon,
		Kind:  activitydomain.KindCustomer,
	}); err != nil {
		s.log.Warn("failed to record activity", zap.String("shop_id", shopID), zap.Error(err))
	}
}

func normalizeEmail(value string) (string, error) {
	email := strings.TrimSpace(value)
	if email != "" && !strings.Contains(email, "@") {
		return "", domain.ErrInvalidEmail
	}
	return email, nil
}

func normalizeStatus(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "active":
		return domain.StatusActive, nil
	case "inactive":
		return domain.StatusInactive, nil
	default:
		return "", domain.ErrInvalidStatus
	}
}

func parseID(value string) (string, error) {
	id := strings.TrimSpace(value)
	if id == "" {
		return "", domain.ErrInvalidID
	}
	return id, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/smallbiznis/ispdesk/internal/clock"
	"github.com/smallbiznis/ispdesk/internal/reminder/domain"
	"github.com/smallbiznis/ispdesk/internal/shopcontext"
	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	log   *zap.Logger
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("reminder.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Schedule(ctx context.Context, req domain.ScheduleReminderRequest) (domain.Reminder, bool, error) {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return domain.Reminder{}, false, domain.ErrInvalidShop
	}
	customerID := strings.TrimSpace(req.CustomerID)
	if customerID == "" {
		return domain.Reminder{}, false, domain.ErrInvalidCustomer
	}
	if req.ScheduledFor.IsZero() {
		return domain.Reminder{}, false, domain.ErrInvalidSchedule
	}

	kind := strings.TrimSpace(req.Type)
	if kind == "" {
		kind = domain.TypePlanExpiry
	}
	channel := strings.TrimSpace(req.Channel)
	if channel == "" {
		channel = domain.ChannelAll
	}

	now := s.clock.Now()
	scheduledFor := req.ScheduledFor
	reminder := domain.Reminder{
		ID:           domain.KeyFor(shopID, customerID, kind, scheduledFor),
		ShopID:       shopID,
		CustomerID:   customerID,
		Name:         strings.TrimSpace(req.Name),
		Channel:      channel,
		Type:         kind,
		ScheduledFor: &scheduledFor,
		CreatedAt:    &now,
	}

	err := s.repo.Create(ctx, reminder)
	if errors.Is(err, docstore.ErrAlreadyExists) {
		existing, getErr := s.repo.Get(ctx, reminder.ID)
		if getErr != nil {
			return domain.Reminder{}, false, fmt.Errorf("get reminder: %w", getErr)
		}
		return existing, false, nil
	}
	if err != nil {
		return domain.Reminder{}, false, fmt.Errorf("schedule reminder: %w", err)
	}

	s.log.Debug("reminder scheduled",
		zap.String("shop_id", shopID),
		zap.String("customer_id", customerID),
		zap.String("type", kind),
		zap.Time("scheduled_for", scheduledFor),
	)
	return reminder, true, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Reminder, error) {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidShop
	}

	items, err := s.repo.List(ctx,
		docstore.Where("shopId", shopID),
		docstore.OrderBy("scheduledFor", docstore.Asc),
	)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return items, nil
}

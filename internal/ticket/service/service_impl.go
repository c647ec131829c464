package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	activitydomain "github.com/smallbiznis/ispdesk/internal/activity/domain"
	"github.com/smallbiznis/ispdesk/internal/clock"
	"github.com/smallbiznis/ispdesk/internal/shopcontext"
	"github.com/smallbiznis/ispdesk/internal/snapshot"
	"github.com/smallbiznis/ispdesk/internal/ticket/domain"
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
		log:       p.Log.Named("ticket.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		activity:  p.Activity,
		snapshots: p.Snapshots,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateTicketRequest) (domain.Ticket, error) {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return domain.Ticket{}, domain.ErrInvalidShop
	}

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		return domain.Ticket{}, domain.ErrInvalidSubject
	}
	email := strings.TrimSpace(req.CustomerEmail)
	if email != "" && !strings.Contains(email, "@") {
		return domain.Ticket{}, domain.ErrInvalidEmail
	}
	priority, err := normalizePriority(req.Priority)
	if err != nil {
		return domain.Ticket{}, err
	}

	now := s.clock.Now()
	ticket := domain.Ticket{
		ID:            s.genID.Generate().String(),
		ShopID:        shopID,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: email,
		Subject:       subject,
		Description:   strings.TrimSpace(req.Description),
		Priority:      priority,
		Status:        domain.StatusOpen,
		AssignedTo:    strings.TrimSpace(req.AssignedTo),
		CreatedAt:     &now,
		UpdatedAt:     &now,
	}

	if err := s.repo.Create(ctx, ticket); err != nil {
		return domain.Ticket{}, fmt.Errorf("create ticket: %w", err)
	}

	s.afterWrite(ctx, shopID, "New ticket: "+ticket.Subject, "fas fa-ticket-alt")
	return ticket, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Ticket, error) {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidShop
	}

	items, err := s.repo.List(ctx,
		docstore.Where("shopId", shopID),
		docstore.OrderBy("createdAt", docstore.Desc),
	)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return items, nil
}

func (s *Service) UpdateStatus(ctx context.Context, req domain.UpdateTicketStatusRequest) (domain.Ticket, error) {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return domain.Ticket{}, domain.ErrInvalidShop
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return domain.Ticket{}, domain.ErrInvalidID
	}
	status, err := normalizeStatus(req.Status)
	if err != nil {
		return domain.Ticket{}, err
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return domain.Ticket{}, domain.ErrNotFound
		}
		return domain.Ticket{}, fmt.Errorf("get ticket: %w", err)
	}
	if current.ShopID != shopID {
		return domain.Ticket{}, domain.ErrNotFound
	}
	if current.Status == status {
		return current, nil
	}

	now := s.clock.Now()
	if err := s.repo.Update(ctx, id, docstore.Fields{}.
		Put("status", status).
		Put("updatedAt", now)); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return domain.Ticket{}, domain.ErrNotFound
		}
		return domain.Ticket{}, fmt.Errorf("update ticket: %w", err)
	}
	current.Status = status
	current.UpdatedAt = &now

	s.afterWrite(ctx, shopID, fmt.Sprintf("Ticket %s: %s", strings.ToLower(status), current.Subject), "fas fa-ticket-alt")
	return current, nil
}

func (s *Service) afterWrite(ctx context.Context, shopID, title, icon string) {
	s.snapshots.Invalidate(shopID)
	if _, err := s.activity.Record(ctx, activitydomain.RecordActivityRequest{
		Title: title,
		Icon:  icon,
		Kind:  activitydomain.KindTicket,
	}); err != nil {
		s.log.Warn("failed to record activity", zap.String("shop_id", shopID), zap.Error(err))
	}
}

func normalizePriority(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "medium":
		return domain.PriorityMedium, nil
	case "low":
		return domain.PriorityLow, nil
	case "high":
		return domain.PriorityHigh, nil
	case "critical":
		return domain.PriorityCritical, nil
	default:
		return "", domain.ErrInvalidPriority
	}
}

func normalizeStatus(value string) (string, error) {
	switch strings.ToLower(strings.Join(strings.Fields(value), " ")) {
	case "open":
		return domain.StatusOpen, nil
	case "in progress", "in-progress", "in_progress":
		return domain.StatusInProgress, nil
	case "resolved":
		return domain.StatusResolved, nil
	case "closed":
		return domain.StatusClosed, nil
	default:
		return "", domain.ErrInvalidStatus
	}
}

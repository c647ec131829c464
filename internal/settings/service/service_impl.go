package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	activitydomain "github.com/smallbiznis/ispdesk/internal/activity/domain"
	"github.com/smallbiznis/ispdesk/internal/clock"
	"github.com/smallbiznis/ispdesk/internal/settings/domain"
	"github.com/smallbiznis/ispdesk/internal/shopcontext"
	"github.com/smallbiznis/ispdesk/internal/snapshot"
	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	Clock     clock.Clock
	Repo      domain.Repository
	Activity  activitydomain.Service
	Snapshots snapshot.Invalidator
}

type Service struct {
	log       *zap.Logger
	clock     clock.Clock
	repo      domain.Repository
	activity  activitydomain.Service
	snapshots snapshot.Invalidator
}

func New(p Params) domain.Service {
	return &Service{
		log:       p.Log.Named("settings.service"),
		clock:     p.Clock,
		repo:      p.Repo,
		activity:  p.Activity,
		snapshots: p.Snapshots,
	}
}

func (s *Service) Get(ctx context.Context) (domain.Settings, error) {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return domain.Settings{}, domain.ErrInvalidShop
	}
	stored, _, err := s.load(ctx, shopID)
	return stored, err
}

func (s *Service) Save(ctx context.Context, req domain.SaveSettingsRequest) (domain.Settings, error) {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return domain.Settings{}, domain.ErrInvalidShop
	}

	current, exists, err := s.load(ctx, shopID)
	if err != nil {
		return domain.Settings{}, err
	}

	fields := docstore.Fields{}
	if req.Currency != nil {
		unit, err := currency.ParseISO(strings.TrimSpace(*req.Currency))
		if err != nil {
			return domain.Settings{}, domain.ErrInvalidCurrency
		}
		fields["currency"] = unit.String()
		current.Currency = unit.String()
	}
	if req.CompanyName != nil {
		fields["companyName"] = strings.TrimSpace(*req.CompanyName)
		current.CompanyName = strings.TrimSpace(*req.CompanyName)
	}
	if req.SupportEmail != nil {
		email := strings.TrimSpace(*req.SupportEmail)
		if email != "" && !strings.Contains(email, "@") {
			return domain.Settings{}, domain.ErrInvalidEmail
		}
		fields["supportEmail"] = email
		current.SupportEmail = email
	}
	if req.SupportPhone != nil {
		fields["supportPhone"] = strings.TrimSpace(*req.SupportPhone)
		current.SupportPhone = strings.TrimSpace(*req.SupportPhone)
	}
	if req.Address != nil {
		fields["address"] = strings.TrimSpace(*req.Address)
		current.Address = strings.TrimSpace(*req.Address)
	}
	if len(fields) == 0 && exists {
		return current, nil
	}

	now := s.clock.Now()
	current.UpdatedAt = &now
	fields["updatedAt"] = now

	if exists {
		err = s.repo.Update(ctx, current.ID, fields)
	} else {
		err = s.repo.Create(ctx, current)
		if errors.Is(err, docstore.ErrAlreadyExists) {
			err = s.repo.Update(ctx, current.ID, fields)
		}
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	s.snapshots.Invalidate(shopID)
	if _, err := s.activity.Record(ctx, activitydomain.RecordActivityRequest{
		Title: "Settings updated",
		Icon:  "fas fa-cog",
		Kind:  activitydomain.KindSettings,
	}); err != nil {
		s.log.Warn("failed to record activity", zap.String("shop_id", shopID), zap.Error(err))
	}
	return current, nil
}

// load returns the stored settings with defaults applied, or the defaults
// when the shop has saved nothing yet.
func (s *Service) load(ctx context.Context, shopID string) (domain.Settings, bool, error) {
	stored, err := s.repo.Get(ctx, domain.DocumentIDFor(shopID))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return domain.Defaults(shopID), false, nil
		}
		return domain.Settings{}, false, fmt.Errorf("get settings: %w", err)
	}
	stored.ID = domain.DocumentIDFor(shopID)
	stored.ShopID = shopID
	return stored.WithDefaults(), true, nil
}

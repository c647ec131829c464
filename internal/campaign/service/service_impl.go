package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	activitydomain "github.com/smallbiznis/ispdesk/internal/activity/domain"
	"github.com/smallbiznis/ispdesk/internal/campaign/domain"
	"github.com/smallbiznis/ispdesk/internal/clock"
	"github.com/smallbiznis/ispdesk/internal/shopcontext"
	"github.com/smallbiznis/ispdesk/internal/snapshot"
	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
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
		log:       p.Log.Named("campaign.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		activity:  p.Activity,
		snapshots: p.Snapshots,
	}
}

func (s *Service) Queue(ctx context.Context, req domain.QueueCampaignRequest) (domain.Campaign, error) {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return domain.Campaign{}, domain.ErrInvalidShop
	}

	channel := strings.ToLower(strings.TrimSpace(req.Channel))
	switch channel {
	case domain.ChannelEmail, domain.ChannelSMS, domain.ChannelWhatsApp:
	default:
		return domain.Campaign{}, domain.ErrInvalidChannel
	}

	recipients := make([]string, 0, len(req.Recipients))
	for _, r := range req.Recipients {
		if r = strings.TrimSpace(r); r != "" {
			recipients = append(recipients, r)
		}
	}
	payload := datatypes.JSONMap{}
	for k, v := range req.Payload {
		payload[k] = v
	}

	now := s.clock.Now()
	campaign := domain.Campaign{
		ID:         s.genID.Generate().String(),
		ShopID:     shopID,
		Channel:    channel,
		Payload:    payload,
		Recipients: recipients,
		Count:      domain.MessageCount(recipients),
		CreatedAt:  &now,
	}

	if err := s.repo.Create(ctx, campaign); err != nil {
		return domain.Campaign{}, fmt.Errorf("queue campaign: %w", err)
	}

	s.snapshots.Invalidate(shopID)
	if _, err := s.activity.Record(ctx, activitydomain.RecordActivityRequest{
		Title: fmt.Sprintf("Campaign queued via %s (%d)", channel, campaign.Count),
		Icon:  "fas fa-bullhorn",
		Kind:  activitydomain.KindCampaign,
	}); err != nil {
		s.log.Warn("failed to record activity", zap.String("shop_id", shopID), zap.Error(err))
	}
	return campaign, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Campaign, error) {
	shopID, ok := shopcontext.ShopIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidShop
	}

	items, err := s.repo.List(ctx,
		docstore.Where("shopId", shopID),
		docstore.OrderBy("createdAt", docstore.Desc),
	)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return items, nil
}

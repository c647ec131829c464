package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/ispdesk/internal/activity/domain"
	"github.com/smallbiznis/ispdesk/internal/clock"
	"github.com/smallbiznis/ispdesk/internal/config"
	"github.com/smallbiznis/ispdesk/internal/shopcontext"
	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setup(t *testing.T, limit int) (domain.Service, *clock.FakeClock) {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Activity{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	cfg := config.DefaultDashboardConfig()
	cfg.RecentActivityLimit = limit
	fake := clock.NewFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	svc := New(Params{
		Log:       zap.NewNop(),
		GenID:     node,
		Clock:     fake,
		Repo:      docstore.NewGormCollection[domain.Activity](conn, domain.CollectionName),
		Dashboard: config.StaticDashboardConfig(cfg),
	})
	return svc, fake
}

func TestRecordDefaultsIcon(t *testing.T) {
	svc, _ := setup(t, 10)
	ctx := shopcontext.WithShopID(context.Background(), "shop-1")

	item, err := svc.Record(ctx, domain.RecordActivityRequest{Title: " Plan created "})
	require.NoError(t, err)
	assert.Equal(t, "Plan created", item.Title)
	assert.Equal(t, domain.DefaultIcon, item.Icon)

	_, err = svc.Record(ctx, domain.RecordActivityRequest{Title: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)
	_, err = svc.Record(context.Background(), domain.RecordActivityRequest{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidShop)
}

func TestRecentIsNewestFirstAndLimited(t *testing.T) {
	svc, fake := setup(t, 3)
	ctx := shopcontext.WithShopID(context.Background(), "shop-1")

	for i := 0; i < 5; i++ {
		_, err := svc.Record(ctx, domain.RecordActivityRequest{Title: "event " + string(rune('a'+i))})
		require.NoError(t, err)
		fake.Advance(time.Minute)
	}
	_, err := svc.Record(shopcontext.WithShopID(context.Background(), "shop-2"), domain.RecordActivityRequest{Title: "foreign"})
	require.NoError(t, err)

	items, err := svc.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "event e", items[0].Title)
	assert.Equal(t, "event c", items[2].Title)

	two, err := svc.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

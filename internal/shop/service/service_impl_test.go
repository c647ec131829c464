package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/ispdesk/internal/clock"
	"github.com/smallbiznis/ispdesk/internal/shop/domain"
	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setup(t *testing.T) domain.Service {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Shop{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return New(Params{
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)),
		Repo:  docstore.NewGormCollection[domain.Shop](conn, domain.CollectionName),
	})
}

func TestCreateShopGeneratesSlug(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	shop, err := svc.Create(ctx, domain.CreateShopRequest{Name: "Skyline Broadband Pvt", OwnerUID: "uid-1"})
	require.NoError(t, err)
	assert.Equal(t, "skyline-broadband-pvt", shop.Slug)

	dup, err := svc.Create(ctx, domain.CreateShopRequest{Name: "Skyline  Broadband pvt"})
	require.NoError(t, err)
	assert.NotEqual(t, shop.Slug, dup.Slug)
	assert.True(t, strings.HasPrefix(dup.Slug, "skyline-broadband-pvt-"))

	got, err := svc.GetByID(ctx, shop.ID)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", got.OwnerUID)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestShopErrors(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateShopRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)
	_, err = svc.GetByID(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
	_, err = svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

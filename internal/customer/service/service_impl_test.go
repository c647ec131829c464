package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	activitydomain "github.com/smallbiznis/ispdesk/internal/activity/domain"
	"github.com/smallbiznis/ispdesk/internal/clock"
	"github.com/smallbiznis/ispdesk/internal/customer/domain"
	"github.com/smallbiznis/ispdesk/internal/shopcontext"
	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockActivity struct {
	mock.Mock
}

func (m *mockActivity) Record(ctx context.Context, req activitydomain.RecordActivityRequest) (activitydomain.Activity, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(activitydomain.Activity), args.Error(1)
}

func (m *mockActivity) Recent(ctx context.Context, limit int) ([]activitydomain.Activity, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]activitydomain.Activity), args.Error(1)
}

type countingInvalidator struct {
	calls map[string]int
}

func (c *countingInvalidator) Invalidate(shopID string) {
	if c.calls == nil {
		c.calls = map[string]int{}
	}
	c.calls[shopID]++
}

type fixture struct {
	svc       domain.Service
	repo      domain.Repository
	activity  *mockActivity
	snapshots *countingInvalidator
	clock     *clock.FakeClock
}

func setup(t *testing.T) fixture {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Customer{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	activity := &mockActivity{}
	activity.On("Record", mock.Anything, mock.Anything).Return(activitydomain.Activity{}, nil)
	snapshots := &countingInvalidator{}
	fake := clock.NewFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	repo := docstore.NewGormCollection[domain.Customer](conn, domain.CollectionName)

	svc := New(Params{
		Log:       zap.NewNop(),
		GenID:     node,
		Clock:     fake,
		Repo:      repo,
		Activity:  activity,
		Snapshots: snapshots,
	})
	return fixture{svc: svc, repo: repo, activity: activity, snapshots: snapshots, clock: fake}
}

func shopCtx(id string) context.Context {
	return shopcontext.WithShopID(context.Background(), id)
}

func TestCreateCustomer(t *testing.T) {
	f := setup(t)
	ctx := shopCtx("shop-1")
	expiry := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	created, err := f.svc.Create(ctx, domain.CreateCustomerRequest{
		Name:   "  Asha  ",
		Email:  "asha@example.com",
		Plan:   "Fiber 100",
		Expiry: &expiry,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "shop-1", created.ShopID)
	assert.Equal(t, "Asha", created.Name)
	assert.Equal(t, domain.StatusActive, created.Status)

	stored, err := f.svc.GetByID(ctx, domain.GetCustomerRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "Fiber 100", stored.Plan)
	require.NotNil(t, stored.Expiry)
	assert.True(t, stored.Expiry.Equal(expiry))

	assert.Equal(t, 1, f.snapshots.calls["shop-1"])
	f.activity.AssertCalled(t, "Record", mock.Anything, mock.MatchedBy(func(req activitydomain.RecordActivityRequest) bool {
		return req.Kind == activitydomain.KindCustomer && strings.Contains(req.Title, "Asha")
	}))
}

func TestCreateCustomerValidation(t *testing.T) {
	f := setup(t)

	cases := []struct {
		name string
		ctx  context.Context
		req  domain.CreateCustomerRequest
		want error
	}{
		{name: "missing_shop", ctx: context.Background(), req: domain.CreateCustomerRequest{Name: "A"}, want: domain.ErrInvalidShop},
		{name: "blank_name", ctx: shopCtx("s"), req: domain.CreateCustomerRequest{Name: " "}, want: domain.ErrInvalidName},
		{name: "bad_email", ctx: shopCtx("s"), req: domain.CreateCustomerRequest{Name: "A", Email: "nope"}, want: domain.ErrInvalidEmail},
		{name: "bad_status", ctx: shopCtx("s"), req: domain.CreateCustomerRequest{Name: "A", Status: "Suspended"}, want: domain.ErrInvalidStatus},
		{name: "negative_amount", ctx: shopCtx("s"), req: domain.CreateCustomerRequest{Name: "A", LastPaymentAmount: -1}, want: domain.ErrInvalidAmount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(tc.ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestListIsScopedToShopAndSortedByName(t *testing.T) {
	f := setup(t)

	for _, name := range []string{"Zed", "anil", "Bina"} {
		_, err := f.svc.Create(shopCtx("shop-a"), domain.CreateCustomerRequest{Name: name})
		require.NoError(t, err)
	}
	_, err := f.svc.Create(shopCtx("shop-b"), domain.CreateCustomerRequest{Name: "Other"})
	require.NoError(t, err)

	items, err := f.svc.List(shopCtx("shop-a"))
	require.NoError(t, err)
	require.Len(t, items, 3)
	for _, item := range items {
		assert.Equal(t, "shop-a", item.ShopID)
	}
	assert.Equal(t, "Bina", items[0].Name)
}

func TestUpdateCustomerMergesFields(t *testing.T) {
	f := setup(t)
	ctx := shopCtx("shop-1")
	expiry := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	created, err := f.svc.Create(ctx, domain.CreateCustomerRequest{Name: "Ravi", Email: "ravi@example.com", Plan: "Basic", Expiry: &expiry})
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	plan := "Premium"
	updated, err := f.svc.Update(ctx, domain.UpdateCustomerRequest{ID: created.ID, Plan: &plan, ClearExpiry: true})
	require.NoError(t, err)
	assert.Equal(t, "Premium", updated.Plan)
	assert.Nil(t, updated.Expiry)

	stored, err := f.svc.GetByID(ctx, domain.GetCustomerRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "Premium", stored.Plan)
	assert.Equal(t, "ravi@example.com", stored.Email)
	assert.Nil(t, stored.Expiry)
	assert.Equal(t, 2, f.snapshots.calls["shop-1"])
}

func TestOtherShopCannotSeeCustomer(t *testing.T) {
	f := setup(t)

	created, err := f.svc.Create(shopCtx("shop-1"), domain.CreateCustomerRequest{Name: "Meera"})
	require.NoError(t, err)

	_, err = f.svc.GetByID(shopCtx("shop-2"), domain.GetCustomerRequest{ID: created.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = f.svc.Delete(shopCtx("shop-2"), domain.GetCustomerRequest{ID: created.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteCustomer(t *testing.T) {
	f := setup(t)
	ctx := shopCtx("shop-1")

	created, err := f.svc.Create(ctx, domain.CreateCustomerRequest{Name: "Kiran"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, domain.GetCustomerRequest{ID: created.ID}))

	_, err = f.svc.GetByID(ctx, domain.GetCustomerRequest{ID: created.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, domain.GetCustomerRequest{ID: " "}), domain.ErrInvalidID)
}

package docstore

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type note struct {
	ID        string `gorm:"primaryKey"`
	ShopID    string `gorm:"index"`
	Title     string
	Rank      int
	CreatedAt time.Time
}

func (n note) DocumentID() string { return n.ID }

func (n note) Fields() Fields {
	return Fields{"shopId": n.ShopID, "title": n.Title, "rank": n.Rank, "createdAt": n.CreatedAt}
}

func setupNotes(t *testing.T) Collection[note] {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&note{}))
	return NewGormCollection[note](conn, "notes")
}

func TestGormCollectionListFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	notes := setupNotes(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, title := range []string{"b", "a", "c"} {
		require.NoError(t, notes.Create(ctx, note{
			ID:        title,
			ShopID:    "shop-1",
			Title:     title,
			Rank:      i,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, notes.Create(ctx, note{ID: "z", ShopID: "shop-2", Title: "z"}))

	got, err := notes.List(ctx, Where("shopId", "shop-1"), OrderBy("createdAt", Desc), Limit(2))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "a", got[1].ID)

	all, err := notes.List(ctx, Where("shopId", "shop-1"), OrderBy("title", Asc))
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].Title)
}

func TestGormCollectionUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	notes := setupNotes(t)

	require.NoError(t, notes.Create(ctx, note{ID: "n1", ShopID: "shop-1", Title: "old"}))
	require.NoError(t, notes.Update(ctx, "n1", Fields{"title": "new", "rank": 7}))

	got, err := notes.Get(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, 7, got.Rank)

	assert.ErrorIs(t, notes.Update(ctx, "missing", Fields{"title": "x"}), ErrNotFound)

	require.NoError(t, notes.Delete(ctx, "n1"))
	_, err = notes.Get(ctx, "n1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, notes.Delete(ctx, "n1"), ErrNotFound)
}

func TestGormCollectionCreateDuplicate(t *testing.T) {
	ctx := context.Background()
	notes := setupNotes(t)

	require.NoError(t, notes.Create(ctx, note{ID: "n1"}))
	assert.ErrorIs(t, notes.Create(ctx, note{ID: "n1"}), ErrAlreadyExists)
}

func TestColumnName(t *testing.T) {
	cases := map[string]string{
		"shopId":            "shop_id",
		"createdAt":         "created_at",
		"billingCycleDays":  "billing_cycle_days",
		"lastPaymentAmount": "last_payment_amount",
		"id":                "id",
	}
	for field, want := range cases {
		if got := ColumnName(field); got != want {
			t.Fatalf("expected %q for %q, got %q", want, field, got)
		}
	}
}

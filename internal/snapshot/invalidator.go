package snapshot

import (
	"context"

	"github.com/smallbiznis/ispdesk/internal/analytics/engine"
)

// Invalidator drops any cached snapshot of a shop. Write services call it
// after every successful mutation.
type Invalidator interface {
	Invalidate(shopID string)
}

// Source hands out the record set of one shop.
type Source interface {
	Load(ctx context.Context, shopID string) (engine.Snapshot, error)
}

type NopInvalidator struct{}

func (NopInvalidator) Invalidate(string) {}

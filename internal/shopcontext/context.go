package shopcontext

import (
	"context"
	"strings"
)

// ShopContextKey is the request context key for the active shop ID.
type ShopContextKey struct{}

// WithShopID stores the shop ID in the context.
func WithShopID(ctx context.Context, shopID string) context.Context {
	return context.WithValue(ctx, ShopContextKey{}, strings.TrimSpace(shopID))
}

// ShopIDFromContext returns the shop ID from context, if set.
func ShopIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	value, _ := ctx.Value(ShopContextKey{}).(string)
	if value == "" {
		return "", false
	}
	return value, true
}

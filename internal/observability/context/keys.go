package context

import "context"

type contextKey string

const (
	requestIDKey contextKey = "observability_request_id"
	shopIDKey    contextKey = "observability_shop_id"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}

func WithShopID(ctx context.Context, shopID string) context.Context {
	if ctx == nil || shopID == "" {
		return ctx
	}
	return context.WithValue(ctx, shopIDKey, shopID)
}

func ShopIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(shopIDKey).(string)
	return value
}

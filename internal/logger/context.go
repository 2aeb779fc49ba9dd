package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	shopperKey   ctxKey = "shopper_key"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	if v := ctx.Value(requestIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// WithShopper tags the context with the shopper key so every store and
// collaborator log line can be correlated to one cart session.
func WithShopper(ctx context.Context, shopper string) context.Context {
	return context.WithValue(ctx, shopperKey, shopper)
}

func ShopperFrom(ctx context.Context) string {
	if v := ctx.Value(shopperKey); v != nil {
		return v.(string)
	}
	return ""
}

// FromCtx returns the logger enriched with request_id and shopper when present.
func FromCtx(ctx context.Context) *zap.Logger {
	l := L()
	if reqID := RequestIDFrom(ctx); reqID != "" {
		l = l.With(zap.String("request_id", reqID))
	}
	if shopper := ShopperFrom(ctx); shopper != "" {
		l = l.With(zap.String("shopper", shopper))
	}
	return l
}

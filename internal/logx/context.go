package logx

import (
	"context"

	"go.uber.org/zap"
)

type loggerKey struct{}

// With returns ctx carrying the current logger extended by fields.
func With(ctx context.Context, fields ...zap.Field) context.Context {
	if len(fields) == 0 {
		return ctx
	}
	return context.WithValue(ctx, loggerKey{}, From(ctx).With(fields...))
}

// From returns the logger bound to ctx, or L.
func From(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return l
	}
	return L
}

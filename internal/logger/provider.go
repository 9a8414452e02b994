package logger

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ProviderCall records the outcome of one external provider call.
// Successful calls are logged at debug level; failures at warn level with the error.
func ProviderCall(ctx context.Context, provider string, startedAt time.Time, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.String("provider", provider),
		zap.Duration("duration", time.Since(startedAt)),
	)
	if err != nil {
		FromContext(ctx).Warn("Provider call failed", append(fields, zap.Error(err))...)
		return
	}
	FromContext(ctx).Debug("Provider call completed", fields...)
}

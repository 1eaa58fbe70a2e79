package httpapi

import (
	"context"

	"github.com/riskibarqy/tournament-ledger/internal/platform/logging"
)

func withRequestID(ctx context.Context, requestID string) context.Context {
	return logging.WithRequestID(ctx, requestID)
}

func requestIDFromContext(ctx context.Context) string {
	return logging.RequestIDFromContext(ctx)
}

package router

import (
	"context"
	"time"

	"github.com/zenese/flightgate/internal/domain/usage"
)

// UsageStore is the consumer interface for monthly call counters (ISP).
type UsageStore interface {
	CheckAndReset(now time.Time) usage.Period
	Count(ctx context.Context, provider string) (int64, error)
	Increment(ctx context.Context, provider string) (int64, error)
}

// Package router selects the upstream flight provider for each search:
// providers are tried in priority order, skipped when their monthly
// quota is spent, and failed over on call errors.
package router

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/zenese/flightgate/internal/config"
	"github.com/zenese/flightgate/internal/domain"
	"github.com/zenese/flightgate/internal/domain/criteria"
	"github.com/zenese/flightgate/internal/domain/offer"
	"github.com/zenese/flightgate/internal/metrics"
	"github.com/zenese/flightgate/internal/provider"
)

// Result is a completed search: the offers and the provider that
// served them. Empty offers with a provider set is a legitimate
// zero-result search, not an error.
type Result struct {
	Provider string
	Offers   []offer.Offer
}

// Service routes searches across configured providers.
//
// The provider order is fixed at construction (ascending priority,
// name as tiebreak); the service holds no other mutable state, so any
// number of Search calls may run concurrently.
type Service struct {
	providers []config.Provider
	registry  *provider.Registry
	store     UsageStore
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a routing service. providers must already be in routing
// order (config.OrderedProviders).
func New(providers []config.Provider, registry *provider.Registry, store UsageStore, logger *zap.Logger) *Service {
	return &Service{
		providers: providers,
		registry:  registry,
		store:     store,
		logger:    logger,
		now:       time.Now,
	}
}

// Search tries providers in priority order and returns the first
// successful, normalized response. Every provider being over quota or
// failing yields domain.ErrAllProvidersExhausted.
func (s *Service) Search(ctx context.Context, c criteria.Criteria) (Result, error) {
	if c.IsZero() {
		metrics.SearchRequestsTotal.WithLabelValues("invalid").Inc()
		return Result{}, domain.ErrInvalidCriteria
	}

	period := s.store.CheckAndReset(s.now())

	for _, p := range s.providers {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		log := s.logger.With(
			zap.String("provider", p.Name),
			zap.String("period", string(period)),
		)

		count, err := s.store.Count(ctx, p.Name)
		if err != nil {
			log.Error("usage count read failed, skipping provider", zap.Error(err))
			continue
		}
		if count >= p.MonthlyQuota {
			log.Info("provider quota exhausted, trying next",
				zap.Int64("count", count),
				zap.Int64("quota", p.MonthlyQuota))
			metrics.QuotaSkipsTotal.WithLabelValues(p.Name).Inc()
			continue
		}

		variant, ok := s.registry.Get(p.Name)
		if !ok {
			log.Error("configured provider has no registered adapter")
			continue
		}

		start := time.Now()
		native, err := variant.Adapter.Search(ctx, c)
		metrics.ProviderCallDuration.WithLabelValues(p.Name).Observe(time.Since(start).Seconds())

		if err != nil {
			metrics.ProviderCallsTotal.WithLabelValues(p.Name, "error").Inc()
			log.Warn("provider call failed, trying next", zap.Error(err))
			continue
		}
		metrics.ProviderCallsTotal.WithLabelValues(p.Name, "success").Inc()

		// Quota is consumed only by successful calls. A failed
		// increment after a served response is reported but does
		// not void the result.
		newCount, err := s.store.Increment(ctx, p.Name)
		if err != nil {
			log.Warn("usage increment failed after successful call", zap.Error(err))
		} else {
			metrics.ProviderUsageCount.WithLabelValues(p.Name, string(period)).Set(float64(newCount))
		}

		offers := variant.Normalizer.Normalize(native)
		log.Info("search served",
			zap.Int("offers", len(offers)),
			zap.Int64("count", newCount))
		metrics.SearchRequestsTotal.WithLabelValues("success").Inc()

		return Result{Provider: p.Name, Offers: offers}, nil
	}

	s.logger.Warn("all providers exhausted or failing",
		zap.String("period", string(period)),
		zap.Int("providers", len(s.providers)))
	metrics.SearchRequestsTotal.WithLabelValues("exhausted").Inc()
	return Result{}, domain.ErrAllProvidersExhausted
}

package router

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/zenese/flightgate/internal/config"
	"github.com/zenese/flightgate/internal/db/memory"
	"github.com/zenese/flightgate/internal/domain"
	"github.com/zenese/flightgate/internal/domain/criteria"
	"github.com/zenese/flightgate/internal/domain/offer"
	"github.com/zenese/flightgate/internal/provider"
	repousage "github.com/zenese/flightgate/internal/repository/usage"
)

// fakeAdapter serves canned offers or a canned error and counts calls.
type fakeAdapter struct {
	name   string
	offers []offer.Offer
	err    error
	calls  int
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Search(_ context.Context, _ criteria.Criteria) (provider.Native, error) {
	f.calls++
	if f.err != nil {
		return nil, domain.NewProviderCall(f.name, f.err)
	}
	return f.offers, nil
}

// passthroughNormalizer returns the offers the fake adapter produced.
type passthroughNormalizer struct{}

func (passthroughNormalizer) Normalize(native provider.Native) []offer.Offer {
	offers, _ := native.([]offer.Offer)
	return offers
}

// env bundles a service wired to fake adapters, a memory-backed usage
// store, and a movable clock.
type env struct {
	svc      *Service
	store    *repousage.Store
	adapters map[string]*fakeAdapter
	now      time.Time
}

func (e *env) advance(d time.Duration) { e.now = e.now.Add(d) }

// providerSpec describes one fake provider for newEnv.
type providerSpec struct {
	name     string
	quota    int64
	priority int
	offers   []offer.Offer
	err      error
}

func newEnv(t *testing.T, specs []providerSpec) *env {
	t.Helper()

	e := &env{
		adapters: make(map[string]*fakeAdapter, len(specs)),
		now:      time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	registry := provider.NewRegistry()
	cfg := &config.Config{Providers: make(map[string]config.ProviderConfig, len(specs))}
	names := make([]string, 0, len(specs))

	for _, spec := range specs {
		fa := &fakeAdapter{name: spec.name, offers: spec.offers, err: spec.err}
		e.adapters[spec.name] = fa
		if err := registry.Register(provider.Variant{Adapter: fa, Normalizer: passthroughNormalizer{}}); err != nil {
			t.Fatalf("register %s: %v", spec.name, err)
		}
		cfg.Providers[spec.name] = config.ProviderConfig{
			MonthlyQuota: spec.quota,
			Priority:     spec.priority,
		}
		names = append(names, spec.name)
	}

	e.store = repousage.NewWithClock(memory.NewStore(), "flightgate:", names, func() time.Time { return e.now })
	e.svc = New(cfg.OrderedProviders(), registry, e.store, zap.NewNop())
	e.svc.now = func() time.Time { return e.now }
	return e
}

func testCriteria(t *testing.T) criteria.Criteria {
	t.Helper()
	c, err := criteria.Parse("SFO", "SBA", "2026-11-17", "2026-11-20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func someOffers(airline string) []offer.Offer {
	return []offer.Offer{
		offer.New(157.50, airline, "2026-11-17T09:00:00", "2026-11-17T10:15:00"),
		offer.New(189.00, airline, "2026-11-17T11:30:00", "2026-11-17T12:45:00"),
	}
}

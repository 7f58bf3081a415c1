// Package usage persists per-provider monthly call counters.
//
// Counters live under period-qualified keys, so a new billing month
// starts from fresh keys and the reset is atomic and idempotent by
// construction. Stale keys age out via TTL.
package usage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/zenese/flightgate/internal/db"
	"github.com/zenese/flightgate/internal/domain"
	"github.com/zenese/flightgate/internal/domain/usage"
)

// KeyTTL keeps last month's counters readable for a grace window after
// rollover, then lets them expire.
const KeyTTL = 62 * 24 * time.Hour

// store is the consumer interface for usage counter operations (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Store tracks monthly call counts for a fixed set of providers.
type Store struct {
	store     store
	prefix    string
	providers map[string]struct{}
	now       func() time.Time

	mu     sync.Mutex
	period usage.Period
}

// New creates a usage store. prefix is the key namespace (e.g. "flightgate:")
// and providers is the closed set of names the store will accept.
func New(s store, prefix string, providers []string) *Store {
	return NewWithClock(s, prefix, providers, time.Now)
}

// NewWithClock creates a usage store with an injectable clock (test-only).
func NewWithClock(s store, prefix string, providers []string, now func() time.Time) *Store {
	known := make(map[string]struct{}, len(providers))
	for _, p := range providers {
		known[p] = struct{}{}
	}
	return &Store{
		store:     s,
		prefix:    prefix,
		providers: known,
		now:       now,
		period:    usage.PeriodOf(now()),
	}
}

// CheckAndReset advances the active billing period if now falls into a
// later one. Repeat calls within the same period are no-ops; concurrent
// calls converge on the same period. Returns the active period.
func (s *Store) CheckAndReset(now time.Time) usage.Period {
	p := usage.PeriodOf(now)

	s.mu.Lock()
	defer s.mu.Unlock()
	if p > s.period {
		s.period = p
	}
	return s.period
}

// Count returns the current call count for a provider in the active
// period. A provider with no recorded calls counts as 0.
func (s *Store) Count(ctx context.Context, provider string) (int64, error) {
	key, err := s.key(provider)
	if err != nil {
		return 0, err
	}

	data, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("usage GET %s: %w", key, err)
	}

	val, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("usage GET %s parse: %w", key, err)
	}
	return val, nil
}

// Increment atomically adds one successful call to the provider's
// counter and returns the new count.
func (s *Store) Increment(ctx context.Context, provider string) (int64, error) {
	key, err := s.key(provider)
	if err != nil {
		return 0, err
	}

	n, err := s.store.IncrBy(ctx, key, 1)
	if err != nil {
		return 0, fmt.Errorf("usage INCRBY %s: %w", key, err)
	}

	// Set TTL only if the key has no expiry yet (NX, not reset on repeat).
	if err := s.store.Expire(ctx, key, KeyTTL, true); err != nil {
		return 0, fmt.Errorf("usage EXPIRE %s: %w", key, err)
	}
	return n, nil
}

// Snapshot reads the counters of every configured provider for the
// active period.
func (s *Store) Snapshot(ctx context.Context) (usage.Record, error) {
	s.mu.Lock()
	period := s.period
	s.mu.Unlock()

	counts := make(map[string]int64, len(s.providers))
	for provider := range s.providers {
		n, err := s.Count(ctx, provider)
		if err != nil {
			return usage.Record{}, err
		}
		counts[provider] = n
	}
	return usage.NewRecord(period, counts), nil
}

// key builds the period-qualified counter key for a configured provider.
func (s *Store) key(provider string) (string, error) {
	if _, ok := s.providers[provider]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownProvider, provider)
	}

	s.mu.Lock()
	period := s.period
	s.mu.Unlock()
	return fmt.Sprintf("%susage:%s:%s", s.prefix, period, provider), nil
}

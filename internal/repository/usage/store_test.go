package usage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/zenese/flightgate/internal/db"
	"github.com/zenese/flightgate/internal/db/memory"
	"github.com/zenese/flightgate/internal/domain"
	"github.com/zenese/flightgate/internal/domain/usage"
)

var providers = []string{"amadeus", "duffel", "skyscanner"}

func march(day int) time.Time {
	return time.Date(2026, 3, day, 10, 0, 0, 0, time.UTC)
}

func newTestStore(t *testing.T, now time.Time) *Store {
	t.Helper()
	return NewWithClock(memory.NewStore(), "flightgate:", providers, func() time.Time { return now })
}

func TestCount_NoCallsYet(t *testing.T) {
	s := newTestStore(t, march(1))

	n, err := s.Count(context.Background(), "amadeus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0, got %d", n)
	}
}

func TestIncrement_ReturnsNewCount(t *testing.T) {
	s := newTestStore(t, march(1))
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		n, err := s.Increment(ctx, "duffel")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != want {
			t.Errorf("expected %d, got %d", want, n)
		}
	}

	n, err := s.Count(ctx, "duffel")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3, got %d", n)
	}
}

func TestIncrement_IsolatedPerProvider(t *testing.T) {
	s := newTestStore(t, march(1))
	ctx := context.Background()

	if _, err := s.Increment(ctx, "amadeus"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n, err := s.Count(ctx, "skyscanner")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 for untouched provider, got %d", n)
	}
}

func TestUnknownProvider(t *testing.T) {
	s := newTestStore(t, march(1))
	ctx := context.Background()

	if _, err := s.Count(ctx, "ghost"); !errors.Is(err, domain.ErrUnknownProvider) {
		t.Errorf("Count: expected ErrUnknownProvider, got %v", err)
	}
	if _, err := s.Increment(ctx, "ghost"); !errors.Is(err, domain.ErrUnknownProvider) {
		t.Errorf("Increment: expected ErrUnknownProvider, got %v", err)
	}
}

func TestCheckAndReset_SamePeriodNoop(t *testing.T) {
	s := newTestStore(t, march(1))
	ctx := context.Background()

	if _, err := s.Increment(ctx, "amadeus"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 3; i++ {
		if p := s.CheckAndReset(march(15)); p != usage.Period("2026-03") {
			t.Fatalf("expected period 2026-03, got %s", p)
		}
	}

	n, err := s.Count(ctx, "amadeus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("same-period reset must not clear counters, got %d", n)
	}
}

func TestCheckAndReset_Rollover(t *testing.T) {
	s := newTestStore(t, march(31))
	ctx := context.Background()

	if _, err := s.Increment(ctx, "amadeus"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	april := time.Date(2026, 4, 1, 0, 0, 1, 0, time.UTC)
	if p := s.CheckAndReset(april); p != usage.Period("2026-04") {
		t.Fatalf("expected period 2026-04, got %s", p)
	}

	n, err := s.Count(ctx, "amadeus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("new period must start at 0, got %d", n)
	}
}

func TestCheckAndReset_NeverMovesBackward(t *testing.T) {
	s := newTestStore(t, march(1))

	april := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	s.CheckAndReset(april)

	// A laggard caller with a stale clock must not roll the period back.
	if p := s.CheckAndReset(march(31)); p != usage.Period("2026-04") {
		t.Errorf("expected period to stay at 2026-04, got %s", p)
	}
}

func TestCheckAndReset_Concurrent(t *testing.T) {
	s := newTestStore(t, march(31))
	april := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if p := s.CheckAndReset(april); p != usage.Period("2026-04") {
				t.Errorf("expected period 2026-04, got %s", p)
			}
		}()
	}
	wg.Wait()
}

func TestSnapshot(t *testing.T) {
	s := newTestStore(t, march(1))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := s.Increment(ctx, "amadeus"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := s.Increment(ctx, "duffel"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Period() != usage.Period("2026-03") {
		t.Errorf("expected period 2026-03, got %s", rec.Period())
	}
	if rec.Count("amadeus") != 2 || rec.Count("duffel") != 1 || rec.Count("skyscanner") != 0 {
		t.Errorf("unexpected counts: %v", rec.Counts())
	}
}

func TestIncrement_SetsTTLOnce(t *testing.T) {
	fake := &recordingStore{KVStore: memory.NewStore()}
	s := NewWithClock(fake, "flightgate:", providers, func() time.Time { return march(1) })
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.Increment(ctx, "amadeus"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if len(fake.expires) != 3 {
		t.Fatalf("expected 3 EXPIRE calls, got %d", len(fake.expires))
	}
	for _, e := range fake.expires {
		if !e.nx {
			t.Error("EXPIRE must use NX so repeat increments keep the original TTL")
		}
		if e.ttl != KeyTTL {
			t.Errorf("expected TTL %v, got %v", KeyTTL, e.ttl)
		}
	}
}

func TestIncrement_StoreError(t *testing.T) {
	fake := &recordingStore{KVStore: memory.NewStore(), incrErr: context.DeadlineExceeded}
	s := NewWithClock(fake, "flightgate:", providers, func() time.Time { return march(1) })

	if _, err := s.Increment(context.Background(), "amadeus"); err == nil {
		t.Fatal("expected error")
	}
}

// recordingStore wraps a real KV store and records Expire calls.
type recordingStore struct {
	db.KVStore
	incrErr error
	expires []expireCall
}

type expireCall struct {
	key string
	ttl time.Duration
	nx  bool
}

func (r *recordingStore) IncrBy(ctx context.Context, key string, val int64) (int64, error) {
	if r.incrErr != nil {
		return 0, r.incrErr
	}
	return r.KVStore.IncrBy(ctx, key, val)
}

func (r *recordingStore) Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error {
	r.expires = append(r.expires, expireCall{key: key, ttl: ttl, nx: nx})
	return r.KVStore.Expire(ctx, key, ttl, nx)
}

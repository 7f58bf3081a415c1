package criteria

import (
	"errors"
	"testing"
	"time"

	"github.com/zenese/flightgate/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNew_Valid(t *testing.T) {
	c, err := New(" sfo ", "sba", date(2026, 11, 17), date(2026, 11, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Origin() != "SFO" {
		t.Errorf("expected origin SFO, got %q", c.Origin())
	}
	if c.Destination() != "SBA" {
		t.Errorf("expected destination SBA, got %q", c.Destination())
	}
	if !c.StartDate().Equal(date(2026, 11, 17)) {
		t.Errorf("unexpected start date: %v", c.StartDate())
	}
}

func TestNew_SameDayTrip(t *testing.T) {
	_, err := New("SFO", "SBA", date(2026, 11, 17), date(2026, 11, 17))
	if err != nil {
		t.Fatalf("same-day trip must be valid, got %v", err)
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name                string
		origin, destination string
		start, end          time.Time
	}{
		{"empty origin", "", "SBA", date(2026, 11, 17), date(2026, 11, 20)},
		{"blank destination", "SFO", "   ", date(2026, 11, 17), date(2026, 11, 20)},
		{"end before start", "SFO", "SBA", date(2026, 11, 20), date(2026, 11, 17)},
		{"zero dates", "SFO", "SBA", time.Time{}, time.Time{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.origin, tc.destination, tc.start, tc.end)
			if !errors.Is(err, domain.ErrInvalidCriteria) {
				t.Fatalf("expected ErrInvalidCriteria, got %v", err)
			}
		})
	}
}

func TestNew_TruncatesToDay(t *testing.T) {
	c, err := New("SFO", "SBA",
		time.Date(2026, 11, 17, 23, 59, 0, 0, time.UTC),
		time.Date(2026, 11, 17, 1, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.StartDate().Equal(c.EndDate()) {
		t.Errorf("expected equal day-granularity dates, got %v and %v", c.StartDate(), c.EndDate())
	}
}

func TestParse(t *testing.T) {
	c, err := Parse("SFO", "SBA", "2026-11-17", "2026-11-20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.StartDate().Format(DateFormat) != "2026-11-17" {
		t.Errorf("unexpected start date: %v", c.StartDate())
	}
}

func TestParse_BadDate(t *testing.T) {
	_, err := Parse("SFO", "SBA", "17/11/2026", "2026-11-20")
	if !errors.Is(err, domain.ErrInvalidCriteria) {
		t.Fatalf("expected ErrInvalidCriteria, got %v", err)
	}
}

func TestIsZero(t *testing.T) {
	if !(Criteria{}).IsZero() {
		t.Error("zero value must report IsZero")
	}

	c, err := New("SFO", "SBA", date(2026, 11, 17), date(2026, 11, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.IsZero() {
		t.Error("built criteria must not report IsZero")
	}
}

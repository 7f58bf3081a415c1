// Package criteria holds the normalized flight search request.
package criteria

import (
	"fmt"
	"strings"
	"time"

	"github.com/zenese/flightgate/internal/domain"
)

// DateFormat is the wire format for travel dates.
const DateFormat = "2006-01-02"

// Criteria is a validated flight search request.
type Criteria struct {
	origin      string
	destination string
	startDate   time.Time
	endDate     time.Time
}

// New creates validated search criteria. Location codes are trimmed and
// upper-cased; dates are truncated to day granularity.
func New(origin, destination string, startDate, endDate time.Time) (Criteria, error) {
	origin = strings.ToUpper(strings.TrimSpace(origin))
	destination = strings.ToUpper(strings.TrimSpace(destination))

	if origin == "" {
		return Criteria{}, fmt.Errorf("origin is required: %w", domain.ErrInvalidCriteria)
	}
	if destination == "" {
		return Criteria{}, fmt.Errorf("destination is required: %w", domain.ErrInvalidCriteria)
	}

	start := truncateToDay(startDate)
	end := truncateToDay(endDate)
	if start.IsZero() || end.IsZero() {
		return Criteria{}, fmt.Errorf("start and end dates are required: %w", domain.ErrInvalidCriteria)
	}
	if end.Before(start) {
		return Criteria{}, fmt.Errorf("end date %s is before start date %s: %w",
			end.Format(DateFormat), start.Format(DateFormat), domain.ErrInvalidCriteria)
	}

	return Criteria{
		origin:      origin,
		destination: destination,
		startDate:   start,
		endDate:     end,
	}, nil
}

// Parse creates criteria from wire-format date strings (YYYY-MM-DD).
func Parse(origin, destination, startDate, endDate string) (Criteria, error) {
	start, err := time.Parse(DateFormat, strings.TrimSpace(startDate))
	if err != nil {
		return Criteria{}, fmt.Errorf("start_date %q: %w", startDate, domain.ErrInvalidCriteria)
	}
	end, err := time.Parse(DateFormat, strings.TrimSpace(endDate))
	if err != nil {
		return Criteria{}, fmt.Errorf("end_date %q: %w", endDate, domain.ErrInvalidCriteria)
	}
	return New(origin, destination, start, end)
}

// Origin returns the origin location code.
func (c Criteria) Origin() string { return c.origin }

// Destination returns the destination location code.
func (c Criteria) Destination() string { return c.destination }

// StartDate returns the first travel date (UTC, day granularity).
func (c Criteria) StartDate() time.Time { return c.startDate }

// EndDate returns the last travel date (UTC, day granularity).
func (c Criteria) EndDate() time.Time { return c.endDate }

// IsZero reports whether the criteria were never built through New.
func (c Criteria) IsZero() bool {
	return c.origin == "" && c.destination == ""
}

func truncateToDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

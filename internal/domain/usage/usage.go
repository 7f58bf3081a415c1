// Package usage holds the monthly billing-period model for provider quotas.
package usage

import "time"

// PeriodFormat is the billing period key layout (year-month granularity).
const PeriodFormat = "2006-01"

// Period is a billing period key, e.g. "2026-08". Provider quotas reset
// when the wall-clock period advances.
type Period string

// PeriodOf returns the billing period containing t (UTC).
func PeriodOf(t time.Time) Period {
	return Period(t.UTC().Format(PeriodFormat))
}

// Record is a snapshot of per-provider call counts for one billing period.
type Record struct {
	period Period
	counts map[string]int64
}

// NewRecord creates a usage record. The counts map is copied.
func NewRecord(period Period, counts map[string]int64) Record {
	c := make(map[string]int64, len(counts))
	for k, v := range counts {
		c[k] = v
	}
	return Record{period: period, counts: c}
}

// Period returns the billing period the record covers.
func (r Record) Period() Period { return r.period }

// Count returns the call count for a provider (0 when absent).
func (r Record) Count(provider string) int64 { return r.counts[provider] }

// Counts returns a copy of the per-provider call counts.
func (r Record) Counts() map[string]int64 {
	c := make(map[string]int64, len(r.counts))
	for k, v := range r.counts {
		c[k] = v
	}
	return c
}

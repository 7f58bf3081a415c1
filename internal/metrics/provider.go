package metrics

import "github.com/prometheus/client_golang/prometheus"

// Provider routing Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flightgate",
			Name:      "search_requests_total",
			Help:      "Total number of flight search requests by outcome",
		},
		[]string{"outcome"}, // "success" / "exhausted" / "invalid"
	)

	ProviderCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flightgate",
			Name:      "provider_calls_total",
			Help:      "Total number of upstream provider calls",
		},
		[]string{"provider", "status"}, // status: "success" / "error"
	)

	ProviderCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "flightgate",
			Name:      "provider_call_duration_seconds",
			Help:      "Upstream provider call duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider"},
	)

	QuotaSkipsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flightgate",
			Name:      "quota_skips_total",
			Help:      "Providers skipped because their monthly quota was spent",
		},
		[]string{"provider"},
	)

	ProviderUsageCount = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "flightgate",
			Name:      "provider_usage_count",
			Help:      "Current monthly call count per provider",
		},
		[]string{"provider", "period"},
	)
)

var providerMetricsRegistered bool

// RegisterProviderMetrics registers Prometheus routing metrics. Must be called once from main.
func RegisterProviderMetrics() {
	if providerMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(ProviderCallsTotal)
	prometheus.MustRegister(ProviderCallDuration)
	prometheus.MustRegister(QuotaSkipsTotal)
	prometheus.MustRegister(ProviderUsageCount)
	providerMetricsRegistered = true
}

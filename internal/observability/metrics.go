package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce      sync.Once
	apiRequestsTotal  *prometheus.CounterVec
	apiLatencySeconds *prometheus.HistogramVec
	apiErrorsTotal    *prometheus.CounterVec

	validationRecordsTotal  *prometheus.CounterVec
	validationWarningsTotal prometheus.Counter
	matchRequestsTotal      *prometheus.CounterVec
	matchCacheHitsTotal     prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		validationRecordsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "validation_records_total",
			Help: "Student records validated, labelled by outcome.",
		}, []string{"outcome"})

		validationWarningsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "validation_warnings_total",
			Help: "Non-fatal warnings raised while validating student records.",
		})

		matchRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "match_requests_total",
			Help: "Eligibility match computations, labelled by status.",
		}, []string{"status"})

		matchCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "match_cache_hits_total",
			Help: "Match requests served from the result cache.",
		})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			validationRecordsTotal,
			validationWarningsTotal,
			matchRequestsTotal,
			matchCacheHitsTotal,
		)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// ValidationRecords exposes the per-outcome validation counter.
func ValidationRecords() *prometheus.CounterVec {
	RegisterMetrics()
	return validationRecordsTotal
}

// ValidationWarnings exposes the warning counter.
func ValidationWarnings() prometheus.Counter {
	RegisterMetrics()
	return validationWarningsTotal
}

// MatchRequests exposes the per-status match counter.
func MatchRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return matchRequestsTotal
}

// MatchCacheHits exposes the cache hit counter.
func MatchCacheHits() prometheus.Counter {
	RegisterMetrics()
	return matchCacheHitsTotal
}

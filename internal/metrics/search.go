package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "duodex",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"mode", "lang", "ranked"},
	)

	SearchCandidates = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "duodex",
			Name:      "search_candidates",
			Help:      "Number of candidates scored per ranked search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"source"}, // "native" / "fallback"
	)

	SearchTruncatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "duodex",
			Name:      "search_truncated_total",
			Help:      "Ranked searches whose matches exceeded the candidate cap",
		},
	)

	RepositoryErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "duodex",
			Name:      "repository_errors_total",
			Help:      "Total content repository errors",
		},
		[]string{"op"},
	)

	RepositoryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "duodex",
			Name:      "repository_duration_seconds",
			Help:      "Content repository call duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"op"},
	)
)

var registerSearchOnce sync.Once

// RegisterSearchMetrics registers the search and repository metrics with the default registry.
// Safe to call more than once.
func RegisterSearchMetrics() {
	registerSearchOnce.Do(func() {
		prometheus.MustRegister(SearchRequestsTotal)
		prometheus.MustRegister(SearchCandidates)
		prometheus.MustRegister(SearchTruncatedTotal)
		prometheus.MustRegister(RepositoryErrorsTotal)
		prometheus.MustRegister(RepositoryDuration)
	})
}

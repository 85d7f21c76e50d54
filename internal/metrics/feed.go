package metrics

import "github.com/prometheus/client_golang/prometheus"

// Listing-feed Prometheus metrics.
var (
	FeedRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pawmatch",
			Name:      "feed_requests_total",
			Help:      "Total number of listing feed requests",
		},
		[]string{"operation", "status"},
	)

	FeedRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pawmatch",
			Name:      "feed_request_duration_seconds",
			Help:      "Listing feed request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	FeedDogsFetched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pawmatch",
			Name:      "feed_dogs_fetched_total",
			Help:      "Total dogs fetched from the listing feed",
		},
	)
)

var feedMetricsRegistered bool

// RegisterFeedMetrics registers Prometheus feed metrics. Must be called once from main.
func RegisterFeedMetrics() {
	if feedMetricsRegistered {
		return
	}
	prometheus.MustRegister(FeedRequestsTotal)
	prometheus.MustRegister(FeedRequestDuration)
	prometheus.MustRegister(FeedDogsFetched)
	feedMetricsRegistered = true
}

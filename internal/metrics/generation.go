package metrics

import "github.com/prometheus/client_golang/prometheus"

// Reasoning-generation Prometheus metrics.
var (
	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pawmatch",
			Name:      "generation_requests_total",
			Help:      "Total number of reasoning generation requests",
		},
		[]string{"provider", "model", "status"},
	)

	GenerationRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pawmatch",
			Name:      "generation_request_duration_seconds",
			Help:      "Reasoning generation request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"provider", "model"},
	)

	GenerationTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pawmatch",
			Name:      "generation_tokens_total",
			Help:      "Total generation tokens consumed",
		},
		[]string{"provider", "model", "type"},
	)

	GenerationErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pawmatch",
			Name:      "generation_errors_total",
			Help:      "Total generation errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	GenerationCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pawmatch",
			Name:      "generation_cache_total",
			Help:      "Generation response cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var genMetricsRegistered bool

// RegisterGenerationMetrics registers Prometheus generation metrics. Must be called once from main.
func RegisterGenerationMetrics() {
	if genMetricsRegistered {
		return
	}
	prometheus.MustRegister(GenerationRequestsTotal)
	prometheus.MustRegister(GenerationRequestDuration)
	prometheus.MustRegister(GenerationTokensTotal)
	prometheus.MustRegister(GenerationErrorsTotal)
	prometheus.MustRegister(GenerationCacheTotal)
	genMetricsRegistered = true
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

// Chat pipeline Prometheus metrics.
var (
	ChatRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "supportbot",
			Name:      "chat_requests_total",
			Help:      "Total number of chat requests",
		},
		[]string{"complexity", "status"},
	)

	ChatRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "supportbot",
			Name:      "chat_request_duration_seconds",
			Help:      "End-to-end chat request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"complexity"},
	)

	ChatFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "supportbot",
			Name:      "chat_fallbacks_total",
			Help:      "Chat requests answered by the offline fallback",
		},
	)

	CompletionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "supportbot",
			Name:      "completion_requests_total",
			Help:      "Total number of completion attempts per model",
		},
		[]string{"model", "status"},
	)

	CompletionRetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "supportbot",
			Name:      "completion_retries_total",
			Help:      "Completion attempts beyond the first, per model",
		},
		[]string{"model"},
	)

	ModelCooldownsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "supportbot",
			Name:      "model_cooldowns_total",
			Help:      "Cooldowns placed on models",
		},
		[]string{"model", "reason"}, // "usage" / "rate_limit"
	)

	RetrievalDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "supportbot",
			Name:      "retrieval_duration_seconds",
			Help:      "Query embedding plus index search duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	RetrievalResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "supportbot",
			Name:      "retrieval_results",
			Help:      "Deduplicated results returned per retrieval",
			Buckets:   []float64{0, 1, 2, 3},
		},
	)

	ScrapeFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "supportbot",
			Name:      "scrape_fetches_total",
			Help:      "Website fetches by path and outcome",
		},
		[]string{"path", "status"}, // "success" / "error" / "cached"
	)
)

var chatMetricsRegistered bool

// RegisterChatMetrics registers Prometheus chat metrics. Must be called once from main.
func RegisterChatMetrics() {
	if chatMetricsRegistered {
		return
	}
	prometheus.MustRegister(ChatRequestsTotal)
	prometheus.MustRegister(ChatRequestDuration)
	prometheus.MustRegister(ChatFallbacksTotal)
	prometheus.MustRegister(CompletionRequestsTotal)
	prometheus.MustRegister(CompletionRetriesTotal)
	prometheus.MustRegister(ModelCooldownsTotal)
	prometheus.MustRegister(RetrievalDuration)
	prometheus.MustRegister(RetrievalResults)
	prometheus.MustRegister(ScrapeFetchesTotal)
	chatMetricsRegistered = true
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

// Advisory pipeline metrics. Registered explicitly from the composition
// root (no init()) so tests can import the package without side effects.
var (
	// AnswersTotal counts answered questions by language and outcome
	// (generated | fallback).
	AnswersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "krishiai",
			Name:      "answers_total",
			Help:      "Total answered questions",
		},
		[]string{"language", "outcome"},
	)

	// GenerationRequestsTotal counts upstream model calls by model and status.
	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "krishiai",
			Name:      "generation_requests_total",
			Help:      "Total generation API calls",
		},
		[]string{"model", "status"},
	)

	// GenerationDuration tracks upstream model call latency.
	GenerationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "krishiai",
			Name:      "generation_duration_seconds",
			Help:      "Generation API call duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"model"},
	)

	// EscalationsTotal counts low-confidence answers flagged for follow-up.
	EscalationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "krishiai",
			Name:      "escalations_total",
			Help:      "Total answers escalated for officer follow-up",
		},
	)

	// RetrievalTopScore observes the best similarity score per query.
	RetrievalTopScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "krishiai",
			Name:      "retrieval_top_score",
			Help:      "Top cosine similarity per retrieval query",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		},
	)
)

// RegisterAdvisoryMetrics registers the advisory pipeline metrics.
func RegisterAdvisoryMetrics() {
	prometheus.MustRegister(
		AnswersTotal,
		GenerationRequestsTotal,
		GenerationDuration,
		EscalationsTotal,
		RetrievalTopScore,
	)
}

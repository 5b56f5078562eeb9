// Package metrics exposes Prometheus instrumentation for graph loading,
// recommendation requests and the HTTP API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for RecommendationsTotal
const (
	OutcomeMatched = "matched"
	OutcomeNoMatch = "no_match"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var (
	// Graph Metrics
	GraphVertices = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "harmonify_graph_vertices",
			Help: "Current number of vertices in the loaded graph",
		},
		[]string{"kind"}, // "user", "song"
	)

	GraphEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "harmonify_graph_edges",
			Help: "Current number of listening edges in the loaded graph",
		},
	)

	GraphLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "harmonify_graph_load_duration_seconds",
			Help:    "Duration of graph loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	GraphLoadErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "harmonify_graph_load_errors_total",
			Help: "Total number of failed graph loads",
		},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harmonify_recommendations_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "harmonify_recommendation_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
	)

	MatchPercent = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "harmonify_match_percent",
			Help:    "Match percentage of successful recommendations",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harmonify_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "harmonify_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// RecordGraphLoad records a load attempt and, on success, the new graph size
func RecordGraphLoad(duration time.Duration, users, songs, edges int, err error) {
	GraphLoadDuration.Observe(duration.Seconds())
	if err != nil {
		GraphLoadErrors.Inc()
		return
	}
	GraphVertices.WithLabelValues("user").Set(float64(users))
	GraphVertices.WithLabelValues("song").Set(float64(songs))
	GraphEdges.Set(float64(edges))
}

// RecordRecommendation records one recommendation request
func RecordRecommendation(outcome string, duration time.Duration, matchPercent int) {
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	RecommendationDuration.Observe(duration.Seconds())
	if outcome == OutcomeMatched {
		MatchPercent.Observe(float64(matchPercent))
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

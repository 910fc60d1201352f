package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors are registered on the default registry through promauto and
// exposed by the server at /metrics.

var (
	// HttpRequestsTotal counts requests by method, route pattern and status code.
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kektorvec_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	// HttpRequestDuration measures server response time.
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kektorvec_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	// TotalVectors tracks the number of stored vectors per namespace.
	TotalVectors = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "kektorvec_vectors_total",
			Help: "Total number of indexed vectors",
		},
		[]string{"namespace"},
	)

	// Namespaces tracks how many namespaces exist.
	Namespaces = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kektorvec_namespaces",
			Help: "Number of namespaces held in memory",
		},
	)

	// QueryDuration measures index search latency per namespace, excluding transport.
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kektorvec_query_duration_seconds",
			Help:    "Duration of nearest neighbour searches in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 14),
		},
		[]string{"namespace"},
	)

	// UpsertedVectorsTotal counts vectors applied by upserts.
	UpsertedVectorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kektorvec_upserted_vectors_total",
			Help: "Total number of vectors written by upserts",
		},
		[]string{"namespace"},
	)
)

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Search
	SearchQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "explorer",
		Subsystem: "search",
		Name:      "queries_total",
		Help:      "Classified search queries by kind",
	}, []string{"kind"})

	SearchUnrecognizedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "explorer",
		Subsystem: "search",
		Name:      "unrecognized_total",
		Help:      "Search queries that matched no grammar",
	})

	// Resolution failures by stage: normalization, shape, structure.
	ResolveErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "explorer",
		Subsystem: "resolve",
		Name:      "errors_total",
		Help:      "Records rejected after fetch",
	}, []string{"kind", "stage"})

	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "explorer",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route and status code",
	}, []string{"route", "code"})

	HTTPRequestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "explorer",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"route"})

	HTTPRateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "explorer",
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the per-client rate limiter",
	})

	// Database
	DBQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "explorer",
		Subsystem: "db",
		Name:      "query_duration_seconds",
		Help:      "Data source query duration",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"query"})

	DBQueryErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "explorer",
		Subsystem: "db",
		Name:      "query_errors_total",
		Help:      "Data source queries that failed after retries",
	}, []string{"query"})

	DBPoolTotalConns = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "explorer",
		Subsystem: "db",
		Name:      "pool_total_conns",
		Help:      "Connections currently in the pool",
	})

	DBPoolAcquiredConns = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "explorer",
		Subsystem: "db",
		Name:      "pool_acquired_conns",
		Help:      "Connections currently acquired",
	})

	DBPoolIdleConns = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "explorer",
		Subsystem: "db",
		Name:      "pool_idle_conns",
		Help:      "Idle connections in the pool",
	})

	// Export
	ExportBlocksWritten = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "explorer",
		Subsystem: "export",
		Name:      "blocks_written_total",
		Help:      "Normalized blocks written by export",
	})

	ExportBlocksSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "explorer",
		Subsystem: "export",
		Name:      "blocks_skipped_total",
		Help:      "Heights skipped by export",
	}, []string{"reason"})

	ExportCheckpointHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "explorer",
		Subsystem: "export",
		Name:      "checkpoint_height",
		Help:      "Last height persisted to the export checkpoint",
	})
)

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, route and status code
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freight_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and route
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "freight_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// RecordsTotal tracks the current size of each ledger collection
	RecordsTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "freight_records_total",
			Help: "Current number of records per collection",
		},
		[]string{"collection"},
	)

	// TrashPurgesTotal counts records removed by the retention sweep
	TrashPurgesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freight_trash_purges_total",
			Help: "Records permanently removed by the trash retention sweep",
		},
		[]string{"collection"},
	)
)

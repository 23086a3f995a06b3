package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	capturesProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "escrow_service",
			Subsystem: "kafka_consumer",
			Name:      "captures_processed_total",
			Help:      "Total number of applied payment captures",
		},
	)

	capturesRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "escrow_service",
			Subsystem: "kafka_consumer",
			Name:      "captures_rejected_total",
			Help:      "Total number of captures the order could not take",
		},
	)

	capturesFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "escrow_service",
			Subsystem: "kafka_consumer",
			Name:      "captures_failed_total",
			Help:      "Total number of failed capture processing attempts",
		},
	)

	capturesDLQ = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "escrow_service",
			Subsystem: "kafka_consumer",
			Name:      "captures_dlq_total",
			Help:      "Total number of captures written to DLQ",
		},
	)

	commitErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "escrow_service",
			Subsystem: "kafka_consumer",
			Name:      "commit_errors_total",
			Help:      "Total number of Kafka commit errors",
		},
	)

	captureProcessingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "escrow_service",
			Subsystem: "kafka_consumer",
			Name:      "capture_processing_duration_seconds",
			Help:      "Histogram of capture processing durations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	capturesInProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "escrow_service",
			Subsystem: "kafka_consumer",
			Name:      "captures_in_progress",
			Help:      "Number of captures currently being processed",
		},
	)
)

var (
	orderRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "escrow_service",
			Subsystem: "http",
			Name:      "order_status_requests_total",
			Help:      "Total number of order status requests",
		},
		[]string{"status"},
	)

	orderRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "escrow_service",
			Subsystem: "http",
			Name:      "order_status_request_duration_seconds",
			Help:      "Histogram of order status request durations",
			Buckets:   prometheus.DefBuckets,
		},
	)

	orderRequestsInProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "escrow_service",
			Subsystem: "http",
			Name:      "order_status_requests_in_progress",
			Help:      "Number of in-progress order status requests",
		},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(
		capturesProcessed,
		capturesRejected,
		capturesFailed,
		capturesDLQ,
		commitErrors,
		captureProcessingDuration,
		capturesInProgress,

		orderRequestTotal,
		orderRequestDuration,
		orderRequestsInProgress,
	)
}

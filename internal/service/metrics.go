package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeApplied      = "applied"
	outcomeNoOp         = "noop"
	outcomeRejected     = "rejected"
	outcomeUnauthorized = "unauthorized"
	outcomeConflict     = "conflict"
	outcomeError        = "error"
)

var (
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "escrow_service",
		Subsystem: "lifecycle",
		Name:      "transitions_total",
		Help:      "Transition attempts by action and outcome.",
	}, []string{"action", "outcome"})

	fundMovementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "escrow_service",
		Subsystem: "lifecycle",
		Name:      "fund_movements_total",
		Help:      "Persisted fund movements by effect.",
	}, []string{"effect"})

	invariantViolations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "escrow_service",
		Subsystem: "lifecycle",
		Name:      "invariant_violations_total",
		Help:      "Loaded order/escrow pairs that broke a structural invariant.",
	})

	notifyFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "escrow_service",
		Subsystem: "notify",
		Name:      "failures_total",
		Help:      "Notifications that could not be handed to the publisher.",
	})

	capturesRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "escrow_service",
		Subsystem: "capture",
		Name:      "rejected_total",
		Help:      "Captured payments that were rejected and need compensation.",
	})

	statusCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "escrow_service",
		Subsystem: "cache",
		Name:      "status_requests_total",
		Help:      "Order status lookups by cache result.",
	}, []string{"result"})

	staleCacheWrites = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "escrow_service",
		Subsystem: "cache",
		Name:      "stale_writes_skipped_total",
		Help:      "Status writes skipped because the cache held a newer version.",
	})
)

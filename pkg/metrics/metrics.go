// Package metrics defines the Prometheus collectors for the ledger.
// Collectors are registered on the default registry at import time and
// served by the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PaymentsTotal counts payment state-machine events by type and status.
	PaymentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coinledger_payments_total",
		Help: "Payment events by type and resulting status.",
	}, []string{"type", "status"})

	// WagersTotal counts settled wagers by game and result.
	WagersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coinledger_wagers_total",
		Help: "Settled wagers by game and result classification.",
	}, []string{"game", "result"})

	// BalanceMutationFailures counts mutations rejected for insufficient funds.
	BalanceMutationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coinledger_balance_mutation_failures_total",
		Help: "Balance mutations rejected because a counter would go negative.",
	})

	// SnapshotSaveFailures counts failed write-throughs to the snapshot store.
	SnapshotSaveFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coinledger_snapshot_save_failures_total",
		Help: "Snapshot write-through failures (operations rolled back).",
	})

	// SnapshotSaveDuration observes the latency of snapshot writes.
	SnapshotSaveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "coinledger_snapshot_save_duration_seconds",
		Help:    "Duration of synchronous snapshot writes.",
		Buckets: prometheus.DefBuckets,
	})
)

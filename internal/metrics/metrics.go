// Package metrics defines and registers all custom Prometheus metrics for the
// parking console. It is the single source of truth for metric names, labels,
// and help strings; the watch-mode ops listener exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "parkease"

// ── Poll metrics ──────────────────────────────────────────────────────────────

// PollsTotal counts poll attempts per resource.
// Labels:
//   - resource: the polled resource ("slots", "bookings", "all_bookings", "report")
//   - result: "success", "error", or "skipped" (tick overlapped an in-flight fetch)
var PollsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "polls_total",
		Help:      "Total number of poll attempts, by resource and result.",
	},
	[]string{"resource", "result"},
)

// PollDuration measures one fetch attempt end-to-end.
var PollDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "poll_duration_seconds",
		Help:      "Duration of a single poll fetch, by resource.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"resource"},
)

// SnapshotSize tracks the record count of the last successful snapshot.
var SnapshotSize = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "snapshot_size",
		Help:      "Number of records in the most recently fetched snapshot, by resource.",
	},
	[]string{"resource"},
)

// ── Gateway metrics ───────────────────────────────────────────────────────────

// GatewayRequestsTotal counts outbound requests.
// Labels:
//   - method: HTTP method
//   - outcome: "2xx", "4xx", "5xx", or "unreachable"
var GatewayRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_requests_total",
		Help:      "Total number of outbound backend requests, by method and outcome.",
	},
	[]string{"method", "outcome"},
)

// ForcedLogoutsTotal counts sessions cleared by the gateway's 401 handler.
var ForcedLogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forced_logouts_total",
		Help:      "Total number of sessions cleared after a 401 response.",
	},
)

// Package metrics defines and registers all custom Prometheus metrics for
// the project system API. It is the single source of truth for metric names,
// labels, and help strings. All vars self-register with the default registry
// through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "project"

// ── Task metrics ──────────────────────────────────────────────────────────────

// TaskTransitionsTotal counts accepted lifecycle transitions.
// Label:
//   - status: the status the task moved into (e.g. "assigned", "accepted")
var TaskTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_transitions_total",
		Help:      "Total number of accepted task status transitions, by new status.",
	},
	[]string{"status"},
)

// TaskConflictsTotal counts transitions rejected because the stored status no
// longer matched the expected precondition.
var TaskConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_conflicts_total",
		Help:      "Total number of task transitions rejected on a stale precondition.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsCreatedTotal counts persisted notification rows.
// Label:
//   - type: notification type (e.g. "task_assigned")
var NotificationsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_created_total",
		Help:      "Total number of notifications persisted, by type.",
	},
	[]string{"type"},
)

// NotificationsPublishedTotal counts successful live publishes.
var NotificationsPublishedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_published_total",
		Help:      "Total number of notifications published to a live channel.",
	},
)

// NotificationsDroppedTotal counts notifications dropped from the bounded
// publish queue or failed on the wire. The persisted row is the fallback.
var NotificationsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Total number of live publishes dropped or failed (best-effort channel).",
	},
)

// PublishQueueDepth tracks the current number of notifications waiting in
// each publisher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var PublishQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "publish_queue_depth",
		Help:      "Current number of notifications pending in each publisher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Role administration metrics ───────────────────────────────────────────────

// RoleSyncFailuresTotal counts per-user failures during role reconciliation.
var RoleSyncFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_sync_failures_total",
		Help:      "Total number of per-user failures while propagating roles to the identity provider.",
	},
)

// Package metrics defines the custom Prometheus metrics of the job board web
// tier. It is the single source of truth for metric names, labels and help
// strings. Metrics register with the default registry on import.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobboard"

// ── Guard metrics ─────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts access guard outcomes.
// Labels:
//   - role: the role the guarded group requires
//   - result: "allow", "login", "unauthorized", "expired" or "error"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of access guard decisions, by required role and result.",
	},
	[]string{"role", "result"},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestDuration measures calls to the external REST API.
// Labels:
//   - endpoint: the route template, e.g. "/job/job/:id"
//   - status: the HTTP status, or "0" when no response arrived
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests to the job board backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint", "status"},
)

// ObserveUpstream matches the backend client's observer signature.
func ObserveUpstream(endpoint string, status int, elapsed time.Duration) {
	UpstreamRequestDuration.WithLabelValues(endpoint, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// ── Form metrics ──────────────────────────────────────────────────────────────

// FormEditsTotal counts editor ops applied to drafts.
// Labels:
//   - form: "resume", "company", "job" or "blog"
//   - op: "set", "add", "update" or "remove"
var FormEditsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "form_edits_total",
		Help:      "Total number of form edit operations, by form and op.",
	},
	[]string{"form", "op"},
)

// FormSubmissionsTotal counts record submissions.
// Labels:
//   - form: the form kind
//   - result: "saved", "invalid", "in_flight" or "error"
var FormSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "form_submissions_total",
		Help:      "Total number of form submissions, by form and result.",
	},
	[]string{"form", "result"},
)

// ValidationViolationsTotal counts individual violations reported to users.
// Label:
//   - form: the form kind, or the account flow name
var ValidationViolationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_violations_total",
		Help:      "Total number of validation violations reported, by form.",
	},
	[]string{"form"},
)

// ── Search metrics ────────────────────────────────────────────────────────────

// SearchRequestsTotal counts vacancy searches.
// Label:
//   - result: "results", "empty" or "error"
var SearchRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_requests_total",
		Help:      "Total number of vacancy searches, by outcome.",
	},
	[]string{"result"},
)

// ── Background metrics ────────────────────────────────────────────────────────

// BackgroundTasksDroppedTotal counts fire-and-forget tasks dropped because
// their dispatcher shard was full.
// Label:
//   - task: the task name, e.g. "logout"
var BackgroundTasksDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "background_tasks_dropped_total",
		Help:      "Total number of background tasks dropped by a full dispatcher shard.",
	},
	[]string{"task"},
)

// Package metrics defines and registers all custom Prometheus metrics for the
// organ matching service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// init via promauto; HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "organmatch"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "invalid_role", "password_mismatch", "username_taken", "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "success", "unknown_user", "invalid_password", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ── Matching metrics ──────────────────────────────────────────────────────────

// MatchQueriesTotal counts executed match queries.
var MatchQueriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "match_queries_total",
		Help:      "Total number of match queries executed.",
	},
)

// MatchesFound observes how many counterparts a single query returned.
var MatchesFound = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "matches_found",
		Help:      "Number of matches returned per match query.",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
	},
)

// NotificationsTotal counts SMS notification attempts.
// Label:
//   - result: "sent" or "failed"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of match notifications attempted, by result.",
	},
	[]string{"result"},
)

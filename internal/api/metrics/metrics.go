// Package metrics defines and registers all custom Prometheus metrics for the
// Arcadia API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at package load;
// the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "arcadia"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRefreshesTotal counts refresh-token exchanges.
// Label:
//   - result: "success", "invalid", "expired", or "unknown_subject"
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of refresh-token exchanges, by result.",
	},
	[]string{"result"},
)

// ── Password lifecycle metrics ────────────────────────────────────────────────

// PasswordResetsTotal counts password-reset protocol steps.
// Labels:
//   - stage: "initiate", "verify", or "reset"
//   - result: "success" or a short failure reason ("not_found", "expired", "invalid")
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password-reset steps, by stage and result.",
	},
	[]string{"stage", "result"},
)

// HashDuration measures how long a single bcrypt operation takes, including
// time spent waiting for a hash-gate slot.
// Label:
//   - op: "hash" or "compare"
var HashDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of bcrypt operations, gate wait included.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"op"},
)

// MailSendsTotal counts outbound notification attempts.
// Labels:
//   - template: "welcome", "password_changed", or "reset_code"
//   - result: "success" or "failure"
var MailSendsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_sends_total",
		Help:      "Total number of outbound notification emails, by template and result.",
	},
	[]string{"template", "result"},
)

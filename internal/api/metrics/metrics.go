// Package metrics defines and registers the custom Prometheus metrics for
// the SafeVault credential service. It is the single source of truth for
// metric names, labels, and help strings.
//
// The promauto package vars register with the default registry at init time;
// HTTP-level metrics come from the echoprometheus middleware wired in the
// router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "safevault"

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "invalid_input", "duplicate", or "error"
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
//   - result: "success", "unauthorized", "throttled", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SubmissionsTotal counts unauthenticated form submissions.
// Label:
//   - result: "accepted" or "rejected"
var SubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Total number of form submissions, by result.",
	},
	[]string{"result"},
)

// AuthzDeniedTotal counts requests rejected by the authorization gate.
// Label:
//   - reason: "unauthenticated" (missing/invalid token) or "forbidden" (role mismatch)
var AuthzDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denied_total",
		Help:      "Total number of requests denied by the authorization gate, by reason.",
	},
	[]string{"reason"},
)

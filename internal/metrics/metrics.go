// Package metrics defines the custom Prometheus metrics for the finance
// admin service. Metrics register with the default registry at import
// time; cmd/server exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fintrack"

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

// TransactionsAppliedTotal counts ledger entries successfully applied.
// Label:
//   - direction: "credit" (positive amount) or "debit" (negative amount)
var TransactionsAppliedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_applied_total",
		Help:      "Total number of ledger transactions applied, by direction.",
	},
	[]string{"direction"},
)

// UsersCreatedTotal counts users created through registration or the
// admin user management surface.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user accounts created.",
	},
)

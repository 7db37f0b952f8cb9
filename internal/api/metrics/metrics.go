// Package metrics defines the custom Prometheus metrics for the campfund API.
// It is the single source of truth for metric names, labels, and help strings.
//
// Call Register once at startup with the registry the /metrics endpoint
// gathers from.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "campfund"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// TokensIssuedTotal counts POST /jwt outcomes.
// Labels:
//   - mode: identity verification mode ("password", "casdoor", "open")
//   - result: "issued" or "rejected"
var TokensIssuedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of session token requests, by verification mode and result.",
	},
	[]string{"mode", "result"},
)

// AuthorizationDecisionsTotal counts role guard decisions.
// Label:
//   - decision: "allow", "forbidden" or "missing_user"
var AuthorizationDecisionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_decisions_total",
		Help:      "Total number of role guard decisions.",
	},
	[]string{"decision"},
)

// ── Booking metrics ───────────────────────────────────────────────────────────

// UsersRegisteredTotal counts POST /users outcomes.
// Label:
//   - result: "created" or "exists"
var UsersRegisteredTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of registration requests, by result.",
	},
	[]string{"result"},
)

// EnrollmentsTotal counts enrollment increments.
// Label:
//   - result: "enrolled", "full" or "not_found"
var EnrollmentsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollments_total",
		Help:      "Total number of class enrollment attempts, by result.",
	},
	[]string{"result"},
)

// ── Payment metrics ───────────────────────────────────────────────────────────

// PaymentIntentsTotal counts payment intent creations.
// Label:
//   - result: "created" or "error"
var PaymentIntentsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_intents_total",
		Help:      "Total number of payment intents requested from the provider.",
	},
	[]string{"result"},
)

// CheckoutsTotal counts checkout outcomes.
// Label:
//   - result: "completed", "replayed", "in_flight" or "error"
var CheckoutsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Total number of checkouts, by result.",
	},
	[]string{"result"},
)

// CheckoutCompensationsTotal counts payments rolled back by the saga path
// after the cart delete failed.
var CheckoutCompensationsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_compensations_total",
		Help:      "Total number of payment inserts undone because the cart delete failed.",
	},
)

// EmailsSentTotal counts confirmation emails.
// Label:
//   - result: "sent", "failed" or "skipped"
var EmailsSentTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of payment confirmation emails, by result.",
	},
	[]string{"result"},
)

// Register adds every collector above to reg. A collector may be registered
// with several registries, so tests can build isolated registries freely.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		TokensIssuedTotal,
		AuthorizationDecisionsTotal,
		UsersRegisteredTotal,
		EnrollmentsTotal,
		PaymentIntentsTotal,
		CheckoutsTotal,
		CheckoutCompensationsTotal,
		EmailsSentTotal,
	)
}

// Package metrics declares the Prometheus metrics of the dashboard. Metric
// names, labels and help strings live here and nowhere else.
//
// All metrics register with the default registry on import; /metrics is
// served by the echoprometheus handler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// ── Backend API metrics ───────────────────────────────────────────────────────

// BackendRequestsTotal counts calls to the remote API.
// Labels:
//   - endpoint: logical endpoint name (e.g. "user.list_accountants")
//   - outcome: "ok", "unauthorized", "not_found", "client_error",
//     "server_error" or "transport_error"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests sent to the backend API.",
	},
	[]string{"endpoint", "outcome"},
)

// BackendRequestDuration measures backend round trips, transport failures
// included.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests sent to the backend API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// ── Dashboard metrics ─────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" (API refused) or "invalid" (form errors)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ListingFallbacksTotal counts listing fetches that failed and were
// rendered as an empty page.
// Label:
//   - listing: "accountants", "clients", "assignments" or "dashboard_stats"
var ListingFallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listing_fallbacks_total",
		Help:      "Total number of failed listing fetches rendered as empty results.",
	},
	[]string{"listing"},
)

// SessionsExpiredTotal counts sessions ended because the API rejected the
// stored token.
var SessionsExpiredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_expired_total",
		Help:      "Total number of sessions ended after the backend rejected their token.",
	},
)

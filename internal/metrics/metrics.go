// internal/metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Claim outcomes used as the "outcome" label.
const (
	OutcomeSuccess           = "success"
	OutcomeNotFound          = "not_found"
	OutcomeConflict          = "conflict"
	OutcomeRequirementNotMet = "requirement_not_met"
	OutcomeTransient         = "transient"
	OutcomeError             = "error"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	claims = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mood_wallet",
			Subsystem: "achievements",
			Name:      "claims_total",
			Help:      "Achievement claim attempts by outcome.",
		},
		[]string{"outcome"},
	)

	progressFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mood_wallet",
			Subsystem: "progress",
			Name:      "increment_failures_total",
			Help:      "Progress increments that failed and were skipped.",
		},
		[]string{"key"},
	)

	ledgerViolations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mood_wallet",
			Subsystem: "ledger",
			Name:      "integrity_violations_total",
			Help:      "Users whose running total diverged from the sum of their ledger deltas.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mood_wallet",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mood_wallet",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)
)

func init() {
	Registry.MustRegister(claims, progressFailures, ledgerViolations, httpRequests, httpDuration)
}

// RecordClaim counts one claim attempt.
func RecordClaim(outcome string) {
	claims.WithLabelValues(outcome).Inc()
}

// RecordProgressFailure counts one swallowed progress increment failure.
func RecordProgressFailure(key string) {
	progressFailures.WithLabelValues(key).Inc()
}

// RecordLedgerViolation counts one detected ledger divergence.
func RecordLedgerViolation() {
	ledgerViolations.Inc()
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency labelled by chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

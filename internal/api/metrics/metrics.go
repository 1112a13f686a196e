// Package metrics defines and registers the custom Prometheus metrics for the
// AgenticSprint API. HTTP request metrics come from echoprometheus; the
// collectors here cover what happens behind the handlers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "agentic"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts signup and login attempts.
// Labels:
//   - action: "signup" or "login"
//   - outcome: "success", "exists", "not_found", "bad_password", "invalid" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of signup and login attempts, by outcome.",
	},
	[]string{"action", "outcome"},
)

// ── Profile metrics ───────────────────────────────────────────────────────────

// AvatarUploadsTotal counts avatar uploads.
// Label:
//   - outcome: "success", "rejected" or "error"
var AvatarUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "avatar_uploads_total",
		Help:      "Total number of avatar uploads, by outcome.",
	},
	[]string{"outcome"},
)

// ── Analysis metrics ──────────────────────────────────────────────────────────

// AnalysesTotal counts document analyses.
// Labels:
//   - analysis_type: "general" or "other"; free-form client types are not labels
//   - outcome: "success", "rejected", "upstream_error" or "error"
var AnalysesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Total number of document analyses, by type and outcome.",
	},
	[]string{"analysis_type", "outcome"},
)

// AnalysisDuration measures the time spent waiting on the completion API.
// Label:
//   - outcome: same values as AnalysesTotal
var AnalysisDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Duration of a document analysis including the upstream call.",
		Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 20, 40, 80},
	},
	[]string{"outcome"},
)

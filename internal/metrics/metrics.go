// Package metrics exposes the Prometheus counters this engine's HTTP
// surface increments as brackets progress (SPEC_FULL ambient addition: the
// engine package itself stays pure, but the process wrapping it needs the
// usual operability surface).
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// MatchesReportedTotal counts every Report/TournamentOrganiserReport call
	// that returned without error, regardless of whether it also validated
	// (spec §6 report/tournament_organiser_report).
	MatchesReportedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matches_reported_total",
			Help: "Total number of match results reported",
		},
		[]string{"format", "reporter"},
	)

	// DisqualificationCascadesTotal counts each Disqualify/Withdraw call,
	// labelled with the bracket format and the reason; how many matches the
	// forced-loss cascade forfeited goes to DisqualificationCascadeSize (spec
	// §6 disqualify, §4.3/§4.4).
	DisqualificationCascadesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "disqualification_cascades_total",
			Help: "Total number of disqualification cascades applied",
		},
		[]string{"format", "reason"},
	)

	// BracketCompletionsTotal counts every bracket whose last match
	// resolved, i.e. every IsOver transition from false to true.
	BracketCompletionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bracket_completions_total",
			Help: "Total number of brackets that reached a champion",
		},
		[]string{"format"},
	)

	// DisqualificationCascadeSize records how many matches a single
	// cascade forfeited, separately from the cascade count itself.
	DisqualificationCascadeSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "disqualification_cascade_matches",
			Help:    "Number of matches forfeited by a single disqualification cascade",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		},
		[]string{"format"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware instruments every request except /metrics itself with the
// request-count and latency collectors.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		wrapped := newResponseWriter(w)

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

// Handler serves the Prometheus exposition format at /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordMatchReported increments the reported-match counter for a given
// bracket format and reporter kind ("player" or "organiser").
func RecordMatchReported(format, reporter string) {
	MatchesReportedTotal.WithLabelValues(format, reporter).Inc()
}

// RecordDisqualificationCascade increments the cascade counter for a
// disqualify/withdraw of the given reason ("disqualified" or "withdrawn")
// and records how many matches the cascade forfeited.
func RecordDisqualificationCascade(format, reason string, matchesTouched int) {
	DisqualificationCascadesTotal.WithLabelValues(format, reason).Inc()
	DisqualificationCascadeSize.WithLabelValues(format).Observe(float64(matchesTouched))
}

// RecordBracketCompletion increments the completion counter for a format
// once a bracket's final match resolves.
func RecordBracketCompletion(format string) {
	BracketCompletionsTotal.WithLabelValues(format).Inc()
}

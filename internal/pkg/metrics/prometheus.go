package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "netpulse",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "netpulse",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "netpulse",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Alert engine metrics
	ruleEvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "netpulse",
			Subsystem: "engine",
			Name:      "rule_evaluations_total",
			Help:      "Total number of rule evaluations",
		},
		[]string{"result"},
	)

	evaluationPassDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "netpulse",
			Subsystem: "engine",
			Name:      "pass_duration_seconds",
			Help:      "Duration of a full rule-evaluation pass in seconds",
			Buckets:   []float64{.01, .05, .1, .5, 1, 5, 10, 30},
		},
	)

	alertsFiredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "netpulse",
			Subsystem: "engine",
			Name:      "alerts_fired_total",
			Help:      "Total number of alerts fired",
		},
		[]string{"severity"},
	)

	activeAlerts = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "netpulse",
			Subsystem: "engine",
			Name:      "active_alerts",
			Help:      "Number of active (unresolved) alerts",
		},
		[]string{"severity"},
	)

	// Notification metrics
	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "netpulse",
			Subsystem: "notify",
			Name:      "deliveries_total",
			Help:      "Total number of notification delivery attempts",
		},
		[]string{"channel_type", "status"},
	)

	// Poller metrics
	pollCyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "netpulse",
			Subsystem: "poller",
			Name:      "cycles_total",
			Help:      "Total number of controller poll cycles",
		},
		[]string{"status"},
	)

	pollCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "netpulse",
			Subsystem: "poller",
			Name:      "cycle_duration_seconds",
			Help:      "Duration of a controller poll cycle in seconds",
			Buckets:   []float64{.1, .5, 1, 5, 10, 30, 60, 120},
		},
	)

	monitoredHosts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "netpulse",
			Subsystem: "poller",
			Name:      "monitored_hosts",
			Help:      "Number of hosts seen in the last poll cycle",
		},
	)

	// Database metrics
	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "netpulse",
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "table"},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = "unknown"
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRuleEvaluation records a single rule evaluation outcome
// (fired, skipped, muted, cooldown, no_data, error).
func RecordRuleEvaluation(result string) {
	ruleEvaluationsTotal.WithLabelValues(result).Inc()
}

// RecordEvaluationPass records the duration of a full evaluation pass
func RecordEvaluationPass(duration time.Duration) {
	evaluationPassDuration.Observe(duration.Seconds())
}

// RecordAlertFired records a fired alert by severity
func RecordAlertFired(severity string) {
	alertsFiredTotal.WithLabelValues(severity).Inc()
}

// SetActiveAlerts sets the gauge for active alerts by severity
func SetActiveAlerts(severity string, count float64) {
	activeAlerts.WithLabelValues(severity).Set(count)
}

// RecordNotification records a notification delivery attempt
func RecordNotification(channelType, status string) {
	notificationsTotal.WithLabelValues(channelType, status).Inc()
}

// RecordPollCycle records a controller poll cycle
func RecordPollCycle(status string, duration time.Duration) {
	pollCyclesTotal.WithLabelValues(status).Inc()
	pollCycleDuration.Observe(duration.Seconds())
}

// SetMonitoredHosts sets the gauge for monitored hosts
func SetMonitoredHosts(count float64) {
	monitoredHosts.Set(count)
}

// RecordDBQuery records a database query duration
func RecordDBQuery(operation, table string, duration time.Duration) {
	dbQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

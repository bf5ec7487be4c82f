package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultNamespace prefixes every metric until InitMetrics runs
const DefaultNamespace = "thrivecorp"

var (
	// Counter metrics
	HTTPRequestCounter   *prometheus.CounterVec
	AuthErrorCounter     *prometheus.CounterVec
	BillingStatusCounter *prometheus.CounterVec
	ReportCounter        *prometheus.CounterVec
	CheckinCounter       prometheus.Counter

	// Histogram metrics
	RequestDuration     *prometheus.HistogramVec
	DBOperationDuration *prometheus.HistogramVec

	registry *prometheus.Registry
)

func init() {
	InitMetrics(DefaultNamespace)
}

// InitMetrics creates every collector under namespace (METRICS_PREFIX) on a
// fresh registry, replacing the previous one. Call it before serving.
func InitMetrics(namespace string) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	HTTPRequestCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	AuthErrorCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_errors_total",
			Help:      "Total number of authentication and authorization errors",
		},
		[]string{"type"}, // "missing_token", "invalid_token", "forbidden", "login_failure"
	)

	BillingStatusCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "billing_status_transitions_total",
			Help:      "Total number of billing status upserts by target status",
		},
		[]string{"status"},
	)

	ReportCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Total number of generated reports by kind and format",
		},
		[]string{"report", "format"},
	)

	CheckinCounter = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkins_total",
			Help:      "Total number of recorded gym check-ins",
		},
	)

	RequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	DBOperationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_operation_duration_seconds",
			Help:      "Duration of database operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	registry = reg
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// TrackDBOperation measures a database operation:
//
//	defer prometheus.TrackDBOperation("billing_report")()
func TrackDBOperation(operation string) func() {
	start := time.Now()
	return func() {
		DBOperationDuration.With(prometheus.Labels{"operation": operation}).
			Observe(time.Since(start).Seconds())
	}
}

// MetricsMiddleware captures request count and latency per route
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			labels := prometheus.Labels{
				"endpoint": c.Path(),
				"method":   c.Request().Method,
				"status":   strconv.Itoa(c.Response().Status),
			}
			RequestDuration.With(labels).Observe(time.Since(start).Seconds())
			HTTPRequestCounter.With(labels).Inc()

			return err
		}
	}
}

func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

func RecordBillingStatus(status string) {
	BillingStatusCounter.With(prometheus.Labels{"status": status}).Inc()
}

func RecordReport(report, format string) {
	ReportCounter.With(prometheus.Labels{"report": report, "format": format}).Inc()
}

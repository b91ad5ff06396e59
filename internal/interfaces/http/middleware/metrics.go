package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains HTTP and authentication metrics.
type Metrics struct {
	// verificationTotal counts API key verifications by outcome.
	verificationTotal *prometheus.CounterVec

	// verificationDuration measures API key verification duration.
	verificationDuration prometheus.Histogram

	// requestTotal counts HTTP requests by method, path template and status.
	requestTotal *prometheus.CounterVec

	// requestDuration measures HTTP request duration.
	requestDuration *prometheus.HistogramVec
}

// NewMetrics creates metrics registered with prometheus.DefaultRegisterer.
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWithRegisterer(namespace, prometheus.DefaultRegisterer)
}

// NewMetricsWithRegisterer creates a new Metrics instance with a custom
// registerer; tests pass a throwaway registry here.
func NewMetricsWithRegisterer(namespace string, registerer prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "warranty_register"
	}
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{}

	m.verificationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "api_key_verification_total",
			Help:      "Total number of API key verifications",
		},
		[]string{"outcome"},
	)

	m.verificationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "api_key_verification_duration_seconds",
			Help:      "API key verification duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	m.requestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	m.requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	collectors := []prometheus.Collector{
		m.verificationTotal,
		m.verificationDuration,
		m.requestTotal,
		m.requestDuration,
	}
	for _, c := range collectors {
		_ = registerer.Register(c)
	}

	return m
}

// Init pre-initializes verification outcome labels with zero values so the
// series appear in /metrics output immediately after startup. Idempotent.
func (m *Metrics) Init() {
	if m == nil {
		return
	}
	for _, outcome := range []string{"allowed", "missing", "invalid", "deactivated", "expired", "error"} {
		m.verificationTotal.WithLabelValues(outcome)
	}
}

// RecordVerification records one API key verification outcome.
func (m *Metrics) RecordVerification(outcome string, duration time.Duration) {
	if m == nil || m.verificationTotal == nil {
		return
	}
	m.verificationTotal.WithLabelValues(outcome).Inc()
	m.verificationDuration.Observe(duration.Seconds())
}

// RecordRequest records one completed HTTP request.
func (m *Metrics) RecordRequest(method, path string, status int, duration time.Duration) {
	if m == nil || m.requestTotal == nil {
		return
	}
	m.requestTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// MetricsMiddleware records per-request counters and latency. Uses the route
// template (c.FullPath) as the path label to keep cardinality bounded.
func MetricsMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RecordRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

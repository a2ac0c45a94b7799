package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the server's Prometheus instrumentation: request counts and
// latency by route/status, plus the finding count and duration of each
// /analyze run, so an operator running `deadcode serve` in CI can graph
// dead-code drift over time instead of only reading one-off reports.
type metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	analyzeFindings prometheus.Histogram
	analyzeDuration prometheus.Histogram
}

func newMetrics(registry *prometheus.Registry) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deadcode_http_requests_total",
			Help: "Total HTTP requests handled by the deadcode API server.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "deadcode_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		analyzeFindings: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "deadcode_analyze_findings_count",
			Help:    "Number of findings returned by each /analyze run.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		analyzeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "deadcode_analyze_duration_seconds",
			Help:    "Wall-clock duration of each /analyze pipeline run.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
	}
	registry.MustRegister(m.requests, m.requestDuration, m.analyzeFindings, m.analyzeDuration)
	return m
}

// middleware records per-request counters, keyed by the matched route
// pattern (not the raw path) so templated routes don't explode cardinality.
func (m *metrics) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		m.requests.WithLabelValues(route, c.Request.Method, statusClass(status)).Inc()
		m.requestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

func metricsHandler(registry *prometheus.Registry) gin.HandlerFunc {
	h := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

// Package metrics provides Prometheus metrics collection for the carbsmart service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// PlanCalculationsTotal counts serving plans by outcome (success, invalid_input, cached).
	PlanCalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plan_calculations_total",
			Help: "Total number of serving plan calculations",
		},
		[]string{"status"},
	)

	PlanCalculationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "plan_calculation_duration_seconds",
			Help:    "Serving plan calculation duration in seconds",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	// PlanServings records the number of servings recommended per plan.
	PlanServings = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "plan_servings",
			Help:    "Recommended number of servings per plan",
			Buckets: []float64{1, 2, 3, 4, 6, 8, 12, 16, 24, 50},
		},
	)

	// PanStoreOperationsTotal counts pan store calls by backend, operation and result.
	PanStoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pan_store_operations_total",
			Help: "Total number of pan store operations",
		},
		[]string{"store", "operation", "result"},
	)

	// CircuitBreakerState exposes breaker state per name (0 closed, 1 open, 2 half-open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)

	// AuditLogDroppedTotal counts log entries dropped because the async queue was full.
	AuditLogDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_log_dropped_total",
			Help: "Log entries dropped by the async logger",
		},
	)

	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"backend", "operation", "result"},
	)

	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)

	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordPlanCalculation records one planner invocation. servings is
// ignored unless status is "success".
func RecordPlanCalculation(duration time.Duration, status string, servings int) {
	PlanCalculationDuration.Observe(duration.Seconds())
	PlanCalculationsTotal.WithLabelValues(status).Inc()
	if status == "success" {
		PlanServings.Observe(float64(servings))
	}
}

// RecordPanStoreOperation records a pan store call.
func RecordPanStoreOperation(store, operation, result string) {
	PanStoreOperationsTotal.WithLabelValues(store, operation, result).Inc()
}

// SetCircuitBreakerState publishes the numeric state of a breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordAuditLogDropped counts n dropped log entries.
func RecordAuditLogDropped(n int) {
	AuditLogDroppedTotal.Add(float64(n))
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(backend, operation, result string) {
	CacheOperationsTotal.WithLabelValues(backend, operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}

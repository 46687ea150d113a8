package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector exports planner and HTTP metrics to Prometheus and mirrors
// them into a Monitor
type MetricsCollector struct {
	registry *prometheus.Registry
	monitor  *Monitor

	recomputes       prometheus.Counter
	recomputeSeconds prometheus.Histogram
	shoppingItems    prometheus.Gauge
	requests         *prometheus.CounterVec
	requestSeconds   *prometheus.HistogramVec
}

// NewMetricsCollector creates a collector with its own registry
func NewMetricsCollector(monitor *Monitor) *MetricsCollector {
	if monitor == nil {
		monitor = NewMonitor()
	}

	mc := &MetricsCollector{
		registry: prometheus.NewRegistry(),
		monitor:  monitor,
		recomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kitchenmate_shopping_list_recomputes_total",
			Help: "Number of shopping list and nutrition recomputes",
		}),
		recomputeSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kitchenmate_shopping_list_recompute_seconds",
			Help:    "Time taken to rebuild a shopping list and nutrition summary",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		shoppingItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kitchenmate_shopping_list_items",
			Help: "Entries on the most recently rebuilt shopping list",
		}),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kitchenmate_http_requests_total",
				Help: "HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),
		requestSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kitchenmate_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	mc.registry.MustRegister(
		mc.recomputes,
		mc.recomputeSeconds,
		mc.shoppingItems,
		mc.requests,
		mc.requestSeconds,
		collectors.NewGoCollector(),
	)
	return mc
}

// ObserveRecompute records one shopping list rebuild
func (mc *MetricsCollector) ObserveRecompute(elapsed time.Duration, items int) {
	mc.recomputes.Inc()
	mc.recomputeSeconds.Observe(elapsed.Seconds())
	mc.shoppingItems.Set(float64(items))
	mc.monitor.RecordRecompute(elapsed, items)
}

// ObserveRequest records one served HTTP request
func (mc *MetricsCollector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	mc.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	mc.requestSeconds.WithLabelValues(method, route).Observe(elapsed.Seconds())
	mc.monitor.RecordRequest(status)
}

// Monitor returns the in-process monitor fed by this collector
func (mc *MetricsCollector) Monitor() *Monitor {
	return mc.monitor
}

// Registry returns the underlying Prometheus registry
func (mc *MetricsCollector) Registry() *prometheus.Registry {
	return mc.registry
}

// Handler serves the registry in the Prometheus exposition format
func (mc *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(mc.registry, promhttp.HandlerOpts{})
}

package monitoring

import (
	"sync"
	"time"
)

// Monitor keeps in-process counters and last-seen values for the stats
// endpoint
type Monitor struct {
	metrics      map[string]interface{}
	counters     map[string]int64
	metricsMutex sync.RWMutex
	startTime    time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		metrics:   make(map[string]interface{}),
		counters:  make(map[string]int64),
		startTime: time.Now(),
	}
}

// RecordMetric records a metric value
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// Increment adds one to a named counter
func (m *Monitor) Increment(name string) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.counters[name]++
}

// GetMetric returns a specific metric or counter value
func (m *Monitor) GetMetric(name string) (interface{}, bool) {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()
	if count, ok := m.counters[name]; ok {
		return count, true
	}
	value, exists := m.metrics[name]
	return value, exists
}

// GetMetrics returns a snapshot of all values and counters
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	metrics := make(map[string]interface{}, len(m.metrics)+len(m.counters)+1)
	for k, v := range m.metrics {
		metrics[k] = v
	}
	for k, v := range m.counters {
		metrics[k] = v
	}
	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

// Reset clears all metrics and counters
func (m *Monitor) Reset() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics = make(map[string]interface{})
	m.counters = make(map[string]int64)
}

// RecordRecompute stores the outcome of a shopping list rebuild
func (m *Monitor) RecordRecompute(elapsed time.Duration, items int) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.counters["recomputes_total"]++
	m.metrics["last_recompute_ms"] = float64(elapsed.Microseconds()) / 1000
	m.metrics["last_shopping_list_items"] = items
	m.metrics["last_recompute_at"] = time.Now().Format(time.RFC3339)
}

// RecordRequest counts a served HTTP request by status class
func (m *Monitor) RecordRequest(status int) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.counters["requests_total"]++
	switch {
	case status >= 500:
		m.counters["requests_5xx"]++
	case status >= 400:
		m.counters["requests_4xx"]++
	}
}

package monitoring

import (
	"testing"
	"time"
)

func TestMonitor_GetMetrics(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	metrics := m.GetMetrics()

	value, exists := metrics["test_metric"]
	if !exists {
		t.Fatalf("Expected 'test_metric' to be present in metrics, but it was not")
	}
	if value != 42 {
		t.Errorf("Expected 'test_metric' to be 42, but got %v", value)
	}

	if _, exists = metrics["uptime_seconds"]; !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}

func TestMonitor_RecordRecompute(t *testing.T) {
	m := NewMonitor()

	m.RecordRecompute(1500*time.Microsecond, 12)
	m.RecordRecompute(500*time.Microsecond, 9)

	if v, _ := m.GetMetric("recomputes_total"); v != int64(2) {
		t.Errorf("Expected 'recomputes_total' to be 2, but got %v", v)
	}
	if v, _ := m.GetMetric("last_shopping_list_items"); v != 9 {
		t.Errorf("Expected 'last_shopping_list_items' to be 9, but got %v", v)
	}
	if v, _ := m.GetMetric("last_recompute_ms"); v != 0.5 {
		t.Errorf("Expected 'last_recompute_ms' to be 0.5, but got %v", v)
	}
	if _, exists := m.GetMetric("last_recompute_at"); !exists {
		t.Errorf("Expected 'last_recompute_at' to be present in metrics, but it was not")
	}
}

func TestMonitor_RecordRequest(t *testing.T) {
	m := NewMonitor()

	for _, status := range []int{200, 201, 404, 400, 500} {
		m.RecordRequest(status)
	}

	metrics := m.GetMetrics()
	expected := map[string]int64{"requests_total": 5, "requests_4xx": 2, "requests_5xx": 1}
	for name, want := range expected {
		if metrics[name] != want {
			t.Errorf("Expected '%s' to be %d, but got %v", name, want, metrics[name])
		}
	}
}

func TestMonitor_Reset(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("metric1", 1)
	m.Increment("counter1")

	m.Reset()

	metrics := m.GetMetrics()
	if len(metrics) != 1 {
		t.Errorf("Expected only uptime after reset, got %d metrics", len(metrics))
	}
	if _, exists := metrics["counter1"]; exists {
		t.Errorf("Expected 'counter1' to be cleared by reset")
	}
}

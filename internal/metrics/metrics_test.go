package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestCollector_ExposesRecordedMetrics(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	collector := NewCollector(registry)

	collector.RecordRequest("GET", "/users", 200)
	collector.RecordRequestLatency("/users", 42*time.Millisecond)
	collector.RecordEventCreated()
	collector.RecordBookingRejected()
	collector.RecordSlotSearch(3)

	recorder := httptest.NewRecorder()
	Handler(registry).ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))

	body := recorder.Body.String()
	for _, want := range []string{
		`scheduler_http_requests_total{method="GET",route="/users",status_code="200"} 1`,
		"scheduler_events_created_total 1",
		"scheduler_bookings_rejected_total 1",
		"scheduler_slot_searches_total 1",
		"scheduler_slots_found_total 3",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics output missing %q:\n%s", want, body)
		}
	}
}

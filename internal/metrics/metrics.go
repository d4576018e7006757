// Package metrics collects and exposes Prometheus metrics for the scheduler.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface the HTTP middleware and services record through.
type Recorder interface {
	RecordRequest(method, route string, statusCode int)
	RecordRequestLatency(route string, duration time.Duration)
	RecordEventCreated()
	RecordBookingRejected()
	RecordSlotSearch(slotsFound int)
}

// Collector implements Recorder on top of a Prometheus registry.
type Collector struct {
	requests         *prometheus.CounterVec
	requestLatency   *prometheus.HistogramVec
	eventsCreated    prometheus.Counter
	bookingsRejected prometheus.Counter
	slotSearches     prometheus.Counter
	slotsFound       prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with the given
// registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduler_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scheduler_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		eventsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scheduler_events_created_total",
			Help: "Events successfully scheduled.",
		}),
		bookingsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scheduler_bookings_rejected_total",
			Help: "Room bookings rejected because of a conflict.",
		}),
		slotSearches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scheduler_slot_searches_total",
			Help: "Common slot searches performed.",
		}),
		slotsFound: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scheduler_slots_found_total",
			Help: "Candidate slots returned across all searches.",
		}),
	}

	reg.MustRegister(
		c.requests,
		c.requestLatency,
		c.eventsCreated,
		c.bookingsRejected,
		c.slotSearches,
		c.slotsFound,
	)

	return c
}

// RecordRequest counts one finished HTTP request.
func (c *Collector) RecordRequest(method, route string, statusCode int) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency observes how long a request took.
func (c *Collector) RecordRequestLatency(route string, duration time.Duration) {
	c.requestLatency.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordEventCreated counts a successfully scheduled event.
func (c *Collector) RecordEventCreated() {
	c.eventsCreated.Inc()
}

// RecordBookingRejected counts a room booking turned away by the conflict
// guard.
func (c *Collector) RecordBookingRejected() {
	c.bookingsRejected.Inc()
}

// RecordSlotSearch counts one slot search and the candidates it produced.
func (c *Collector) RecordSlotSearch(slotsFound int) {
	c.slotSearches.Inc()
	c.slotsFound.Add(float64(slotsFound))
}

// Handler returns the HTTP handler Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

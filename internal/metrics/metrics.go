package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RMahshie/whitespace/pkg/occupancy"
)

// Metrics holds the Prometheus collectors for the API. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry prometheus.Gatherer

	httpRequests      *prometheus.CounterVec   // by method, route and status
	httpDuration      *prometheus.HistogramVec // by method and route
	upstreamErrors    *prometheus.CounterVec   // by operation
	channelOccupancy  *prometheus.GaugeVec     // latest occupancy percentage by location
	classifiedReading *prometheus.CounterVec   // by status
}

// New creates and registers all collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "whitespace_http_requests_total",
				Help: "HTTP requests served, by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "whitespace_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		upstreamErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "whitespace_upstream_errors_total",
				Help: "Failed calls to the scan service, by operation",
			},
			[]string{"operation"},
		),
		channelOccupancy: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "whitespace_channel_occupancy_percent",
				Help: "Percentage of occupied channels in the latest analysis, by location",
			},
			[]string{"location"},
		),
		classifiedReading: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "whitespace_classified_readings_total",
				Help: "Readings classified against a threshold, by status",
			},
			[]string{"status"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one served HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// UpstreamError counts a failed scan service call
func (m *Metrics) UpstreamError(operation string) {
	if m == nil {
		return
	}
	m.upstreamErrors.WithLabelValues(operation).Inc()
}

// SetOccupancy records the occupied channel percentage of a location
func (m *Metrics) SetOccupancy(location string, pct float64) {
	if m == nil {
		return
	}
	m.channelOccupancy.WithLabelValues(location).Set(pct)
}

// CountReadings adds classified reading totals
func (m *Metrics) CountReadings(occupied, vacant int) {
	if m == nil {
		return
	}
	m.classifiedReading.WithLabelValues(string(occupancy.Occupied)).Add(float64(occupied))
	m.classifiedReading.WithLabelValues(string(occupancy.Vacant)).Add(float64(vacant))
}

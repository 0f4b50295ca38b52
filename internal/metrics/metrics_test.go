package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/api/dashboard", 200, 15*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/dashboard", 200, 5*time.Millisecond)
	m.UpstreamError("list_scans")
	m.SetOccupancy("loc-1", 37.5)
	m.CountReadings(3, 5)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/dashboard", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamErrors.WithLabelValues("list_scans")))
	assert.Equal(t, 37.5, testutil.ToFloat64(m.channelOccupancy.WithLabelValues("loc-1")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.classifiedReading.WithLabelValues("Occupied")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.classifiedReading.WithLabelValues("Vacant")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveRequest(http.MethodGet, "/health", 200, time.Millisecond)
		m.UpstreamError("list_locations")
		m.SetOccupancy("all", 10)
		m.CountReadings(1, 1)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.UpstreamError("latest_scan")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `whitespace_upstream_errors_total{operation="latest_scan"} 1`))
}

package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"venuebook/config"
	"venuebook/infras/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetricsExposition(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "venuebook-test"

	m := metrics.New(cfg)

	m.ObserveAvailability(metrics.OutcomeOK, 25*time.Millisecond, 12)
	m.ObserveAvailability(metrics.OutcomeError, time.Millisecond, 0)
	m.ObserveBooking(metrics.OutcomeOK)
	m.IncBookingConflict(true)
	m.AddExpired(3)
	m.ObserveHTTP(http.MethodGet, "/v1/availability/{venue}/{day}/{duration}", http.StatusOK, 30*time.Millisecond)
	m.RateLimited("/v1/bookings")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `venuebook_availability_query_duration_seconds_count{app="venuebook-test",outcome="ok"} 1`)
	assert.Contains(t, text, `venuebook_availability_slots_returned_count{app="venuebook-test"} 1`)
	assert.Contains(t, text, `venuebook_bookings_total{app="venuebook-test",outcome="ok"} 1`)
	assert.Contains(t, text, `venuebook_booking_conflicts_total{app="venuebook-test",retried="true"} 1`)
	assert.Contains(t, text, `venuebook_bookings_expired_total{app="venuebook-test"} 3`)
	assert.Contains(t, text, `venuebook_http_requests_throttled_total{app="venuebook-test",route="/v1/bookings"} 1`)
}

func TestNopMetrics(t *testing.T) {
	m := metrics.NewNop()

	assert.NotPanics(t, func() {
		m.ObserveAvailability(metrics.OutcomeOK, time.Second, 1)
		m.ObserveBooking(metrics.OutcomeError)
		m.IncBookingConflict(false)
		m.AddExpired(1)
		m.ObserveHTTP(http.MethodPost, "/v1/bookings", http.StatusConflict, time.Second)
		m.RateLimited("/v1/bookings")
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

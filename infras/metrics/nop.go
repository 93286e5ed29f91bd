package metrics

import (
	"net/http"
	"time"
)

type nopMetrics struct{}

// NewNop discards every observation. Used when metrics are disabled and in tests.
func NewNop() Metrics {
	return nopMetrics{}
}

func (nopMetrics) ObserveAvailability(_ string, _ time.Duration, _ int) {}

func (nopMetrics) ObserveBooking(_ string) {}

func (nopMetrics) IncBookingConflict(_ bool) {}

func (nopMetrics) AddExpired(_ int64) {}

func (nopMetrics) ObserveHTTP(_, _ string, _ int, _ time.Duration) {}

func (nopMetrics) RateLimited(_ string) {}

func (nopMetrics) Handler() http.Handler {
	return http.NotFoundHandler()
}

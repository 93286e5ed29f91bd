package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"venuebook/config"
	"venuebook/infras/metrics"
	otelMocks "venuebook/infras/otel/mocks"
	availabilityMocks "venuebook/internal/domains/availability/service/mocks"
	bookingMocks "venuebook/internal/domains/booking/service/mocks"
	"venuebook/internal/handlers/availability"
	"venuebook/internal/handlers/booking"
	cacheMocks "venuebook/shared/cache/mocks"
	transport "venuebook/transport/http"
	"venuebook/transport/http/middleware"
	"venuebook/transport/http/router"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newServer(t *testing.T, cfg *config.Config, m metrics.Metrics) *transport.HTTP {
	t.Helper()

	ctrl := gomock.NewController(t)
	r := router.New(router.DomainHandlers{
		Availability: availability.New(availabilityMocks.NewMockAvailability(ctrl), otelMocks.NewOtel()),
		Booking:      booking.New(bookingMocks.NewMockBooking(ctrl), otelMocks.NewOtel()),
	})
	mw := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, cacheMocks.NewMockRedisCache(ctrl), m)

	return transport.New(cfg, r, mw, m)
}

func TestHealth(t *testing.T) {
	server := newServer(t, &config.Config{}, metrics.NewNop())

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, transport.ServerStateReady, server.State())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestSwagger(t *testing.T) {
	t.Run("served when enabled", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.App.Swagger.Enable = true
		cfg.App.Swagger.Path = "/swagger"
		cfg.App.Swagger.Host = "api.example.com"

		rec := httptest.NewRecorder()
		newServer(t, cfg, metrics.NewNop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"/v1/availability/{venue}/{day}/{duration}"`)
		assert.Contains(t, rec.Body.String(), `"host": "api.example.com"`)
	})

	t.Run("absent when disabled", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newServer(t, &config.Config{}, metrics.NewNop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.Metrics.Enable = true
	cfg.Metrics.Path = "/metrics"

	rec := httptest.NewRecorder()
	newServer(t, cfg, metrics.New(cfg)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

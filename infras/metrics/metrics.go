package metrics

import (
	"net/http"
	"strconv"
	"time"

	"venuebook/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "venuebook"

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
	OutcomeCache = "cache"
)

type Metrics interface {
	ObserveAvailability(outcome string, elapsed time.Duration, slots int)
	ObserveBooking(outcome string)
	IncBookingConflict(retried bool)
	AddExpired(count int64)
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
	RateLimited(route string)
	Handler() http.Handler
}

type prometheusMetrics struct {
	registry            *prometheus.Registry
	availabilityLatency *prometheus.HistogramVec
	availabilitySlots   prometheus.Histogram
	bookings            *prometheus.CounterVec
	bookingConflicts    *prometheus.CounterVec
	expired             prometheus.Counter
	httpLatency         *prometheus.HistogramVec
	rateLimited         *prometheus.CounterVec
}

// New registers every collector on a private registry labelled with the app name.
func New(cfg *config.Config) Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	labels := prometheus.Labels{"app": cfg.App.Name}

	m := &prometheusMetrics{
		registry: registry,
		availabilityLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "availability_query_duration_seconds",
			Help:        "Time spent resolving availability for a venue day.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"outcome"}),
		availabilitySlots: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "availability_slots_returned",
			Help:        "Number of priced slots returned per availability query.",
			ConstLabels: labels,
			Buckets:     prometheus.LinearBuckets(0, 10, 10),
		}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "bookings_total",
			Help:        "Booking attempts by outcome.",
			ConstLabels: labels,
		}, []string{"outcome"}),
		bookingConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "booking_conflicts_total",
			Help:        "Serialization failures while inserting bookings.",
			ConstLabels: labels,
		}, []string{"retried"}),
		expired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "bookings_expired_total",
			Help:        "Unpaid bookings released by the sweeper.",
			ConstLabels: labels,
		}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency by route and status.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_requests_throttled_total",
			Help:        "Requests rejected by the rate limiter.",
			ConstLabels: labels,
		}, []string{"route"}),
	}

	registry.MustRegister(
		m.availabilityLatency,
		m.availabilitySlots,
		m.bookings,
		m.bookingConflicts,
		m.expired,
		m.httpLatency,
		m.rateLimited,
	)

	return m
}

func (m *prometheusMetrics) ObserveAvailability(outcome string, elapsed time.Duration, slots int) {
	m.availabilityLatency.WithLabelValues(outcome).Observe(elapsed.Seconds())

	if outcome != OutcomeError {
		m.availabilitySlots.Observe(float64(slots))
	}
}

func (m *prometheusMetrics) ObserveBooking(outcome string) {
	m.bookings.WithLabelValues(outcome).Inc()
}

func (m *prometheusMetrics) IncBookingConflict(retried bool) {
	m.bookingConflicts.WithLabelValues(strconv.FormatBool(retried)).Inc()
}

func (m *prometheusMetrics) AddExpired(count int64) {
	m.expired.Add(float64(count))
}

func (m *prometheusMetrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpLatency.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func (m *prometheusMetrics) RateLimited(route string) {
	m.rateLimited.WithLabelValues(route).Inc()
}

func (m *prometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

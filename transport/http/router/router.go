package router

import (
	"net/http"
	"strings"

	"venuebook/internal/handlers/availability"
	"venuebook/internal/handlers/booking"
	"venuebook/shared/failure"
	"venuebook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const apiVersion = "/v1"

// DomainHandlers is filled by wire; every field is mounted under /v1.
type DomainHandlers struct {
	Availability availability.Handler
	Booking      booking.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func New(domainHandlers DomainHandlers) Router {
	return Router{DomainHandlers: domainHandlers}
}

func (r *Router) SetupRoutes(mux chi.Router) {
	mux.NotFound(notFound)
	mux.MethodNotAllowed(methodNotAllowed)

	mux.Route(apiVersion, func(v1 chi.Router) {
		r.DomainHandlers.Availability.Router(v1)
		r.DomainHandlers.Booking.Router(v1)
	})
}

// LogRoutes prints the mounted method and pattern pairs at debug level.
func LogRoutes(routes chi.Routes) {
	err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		log.Debug().Str("method", method).Str("route", strings.TrimSuffix(route, "/*")).Msg("route mounted")

		return nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to walk routes")
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	response.WithError(w, failure.NotFound("no route for "+r.URL.Path))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response.WithError(w, failure.New(http.StatusMethodNotAllowed, "", r.Method+" is not allowed on "+r.URL.Path))
}

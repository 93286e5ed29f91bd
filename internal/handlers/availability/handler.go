package availability

import (
	"net/http"

	"venuebook/infras/otel"
	"venuebook/internal/domains/availability/model/dto"
	"venuebook/internal/domains/availability/service"
	"venuebook/shared/constant"
	"venuebook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/availability/{venue}/{day}/{duration}", handler.GetAvailability)
}

// GetAvailability lists the bookable slots of a venue day.
// @Summary Get venue availability
// @Description List bookable box slots for a venue, day and duration with their price tier and curfew flag.
// @Tags Availability
// @Produce json
// @Param venue path string true "Venue ID or code"
// @Param day path string true "Day (YYYY-MM-DD)"
// @Param duration path int true "Duration in minutes"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Available slots"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/{venue}/{day}/{duration} [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	req := dto.AvailabilityRequest{
		Venue:    chi.URLParam(r, constant.RequestParamVenue),
		Day:      chi.URLParam(r, constant.RequestParamDay),
		Duration: chi.URLParam(r, constant.RequestParamDuration),
	}

	res, err := handler.service.Get(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("venue", req.Venue).Str("day", req.Day).Msg("failed to get availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

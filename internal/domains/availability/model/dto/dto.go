package dto

import (
	"strconv"

	"venuebook/internal/domains/availability/engine"
	"venuebook/shared/failure"
	"venuebook/shared/validator"
	"venuebook/shared/walltime"
)

const maxDuration = 24 * 60

// AvailabilityRequest mirrors GET /v1/availability/{venue}/{day}/{duration}.
type AvailabilityRequest struct {
	Venue    string `json:"venue"    validate:"required,max=100"`
	Day      string `json:"day"      validate:"required,isodate"`
	Duration string `json:"duration" validate:"required"`
}

// Validate checks the request shape and returns the duration in minutes.
func (r AvailabilityRequest) Validate() (int, error) {
	if err := validator.ValidateStruct(&r); err != nil {
		return 0, err //nolint:wrapcheck
	}

	duration, err := strconv.Atoi(r.Duration)
	if err != nil || duration <= 0 || duration > maxDuration {
		return 0, failure.BadRequestFromString("duration must be a number of minutes between 1 and 1440") //nolint:wrapcheck
	}

	return duration, nil
}

type TimeResponse struct {
	Start     walltime.WallTime `json:"start"`
	Duration  int               `json:"duration"`
	BoxID     string            `json:"box_id"`
	BoxSlotID string            `json:"box_slot_id"`
	Type      string            `json:"type"`
	Price     int64             `json:"price"`
	Over18    bool              `json:"over_18,omitempty"`
}

func (r *TimeResponse) FromQuote(quote engine.Quote) {
	r.Start = quote.Start
	r.Duration = quote.Duration
	r.BoxID = quote.BoxID()
	r.BoxSlotID = quote.SlotID()
	r.Type = quote.Tier
	r.Price = quote.Price
	r.Over18 = quote.Over18
}

type AvailabilityResponse struct {
	VenueID   string         `json:"venue_id"`
	VenueCode string         `json:"venue_code"`
	Times     []TimeResponse `json:"times"`
}

func (r *AvailabilityResponse) FromQuotes(venueID, venueCode string, quotes []engine.Quote) {
	r.VenueID = venueID
	r.VenueCode = venueCode

	r.Times = make([]TimeResponse, len(quotes))
	for i, quote := range quotes {
		r.Times[i].FromQuote(quote)
	}
}

package dto

import (
	"strconv"
	"time"

	availabilityModel "venuebook/internal/domains/availability/model"
	avDto "venuebook/internal/domains/availability/model/dto"
	"venuebook/internal/domains/booking/model"
	"venuebook/shared"
	"venuebook/shared/constant"
	gDto "venuebook/shared/dto"
	gModel "venuebook/shared/model"

	"github.com/google/uuid"
)

const (
	EventDetailTypeCreate = "create"
	EventSource           = "booking"

	SourceWeb = "web"
)

type CreateBookingRequest struct {
	Venue      string   `json:"venue"        validate:"required,max=100"`
	Day        string   `json:"day"          validate:"required,isodate"`
	Duration   int      `json:"duration"     validate:"required,gte=1,lte=1440"`
	BoxSlotIDs []string `json:"box_slot_ids" validate:"required,min=1,max=2,dive,required"`
	Source     string   `json:"source"       validate:"omitempty,max=50"`
}

func (c *CreateBookingRequest) AvailabilityRequest() avDto.AvailabilityRequest {
	return avDto.AvailabilityRequest{
		Venue:    c.Venue,
		Day:      c.Day,
		Duration: strconv.Itoa(c.Duration),
	}
}

func (c *CreateBookingRequest) ToModel(offer availabilityModel.Offer, user string, now time.Time) model.Booking {
	source := c.Source
	if source == "" {
		source = SourceWeb
	}

	bookingType := model.TypeSingle
	if offer.Quote.Combined() {
		bookingType = model.TypeCombined
	}

	return model.Booking{
		ID:        uuid.NewString(),
		VenueID:   offer.Venue.ID,
		BoxSlotID: offer.Quote.SlotID(),
		StartAt:   offer.StartAt(),
		EndAt:     offer.EndAt(),
		Price:     offer.Quote.Price,
		Tier:      offer.Quote.Tier,
		Status:    model.StatusPaymentInProgress,
		Source:    source,
		Type:      bookingType,
		Metadata:  gModel.NewMetadata(user, now),
	}
}

type UpdateStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof='Paid' 'Cancelled'"`
}

type BookingResponse struct {
	ID        string   `json:"id"`
	VenueID   string   `json:"venue_id"`
	BoxSlotID string   `json:"box_slot_id"`
	BoxIDs    []string `json:"box_ids,omitempty"`
	StartAt   string   `json:"start_at"`
	EndAt     string   `json:"end_at"`
	Duration  int      `json:"duration"`
	Price     int64    `json:"price"`
	Type      string   `json:"type"`
	Tier      string   `json:"tier"`
	Status    string   `json:"status"`
	Source    string   `json:"source"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.VenueID = model.VenueID
	r.BoxSlotID = model.BoxSlotID
	r.StartAt = model.StartAt.Format(constant.DateFormat)
	r.EndAt = model.EndAt.Format(constant.DateFormat)
	r.Duration = model.Duration()
	r.Price = model.Price
	r.Type = model.Type
	r.Tier = model.Tier
	r.Status = model.Status
	r.Source = model.Source
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// Event is the envelope published on the booking topic.
type Event struct {
	EventBusName string          `json:"EventBusName"`
	DetailType   string          `json:"DetailType"`
	Source       string          `json:"Source"`
	Detail       BookingResponse `json:"Detail"`
}

func NewCreatedEvent(busName string, booking BookingResponse) Event {
	return Event{
		EventBusName: busName,
		DetailType:   EventDetailTypeCreate,
		Source:       EventSource,
		Detail:       booking,
	}
}

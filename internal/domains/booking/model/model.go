package model

import (
	"slices"
	"time"

	"venuebook/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID        = "id"
	FieldVenueID   = "venue_id"
	FieldStartAt   = "start_at"
	FieldEndAt     = "end_at"
	FieldStatus    = "status"
	FieldSource    = "source"
	FieldDeletedAt = "deleted_at"
	FieldCreatedAt = "created_at"

	BoxBookingTableName  = "box_bookings"
	BoxBookingEntityName = "box_booking"

	FieldBookingID = "booking_id"
	FieldBoxID     = "box_id"
)

const (
	StatusPaymentInProgress = "Payment in progress"
	StatusPaid              = "Paid"
	StatusCancelled         = "Cancelled"
)

const (
	TypeSingle   = "single"
	TypeCombined = "combined"
)

type Booking struct {
	ID        string     `db:"id"`
	VenueID   string     `db:"venue_id"`
	BoxSlotID string     `db:"box_slot_id"`
	StartAt   time.Time  `db:"start_at"`
	EndAt     time.Time  `db:"end_at"`
	Price     int64      `db:"price"`
	Tier      string     `db:"tier"`
	Status    string     `db:"status"`
	Source    string     `db:"source"`
	Type      string     `db:"type"`
	DeletedAt *time.Time `db:"deleted_at"`
	model.Metadata
}

// Duration in whole minutes.
func (b Booking) Duration() int {
	return int(b.EndAt.Sub(b.StartAt) / time.Minute)
}

// CanTransition implements Payment in progress -> Paid | Cancelled. Paid and Cancelled are terminal.
func CanTransition(from, to string) bool {
	if from != StatusPaymentInProgress {
		return false
	}

	return slices.Contains([]string{StatusPaid, StatusCancelled}, to)
}

type BoxBooking struct {
	ID        string `db:"id"`
	BookingID string `db:"booking_id"`
	BoxID     string `db:"box_id"`
}

// Occupancy is one box held by an active booking, with the section the box sits in.
type Occupancy struct {
	BookingID string    `db:"booking_id"`
	BoxID     string    `db:"box_id"`
	Section   string    `db:"section"`
	StartAt   time.Time `db:"start_at"`
	EndAt     time.Time `db:"end_at"`
}

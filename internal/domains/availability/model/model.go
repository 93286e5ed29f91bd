package model

import (
	"slices"
	"time"

	"venuebook/internal/domains/availability/engine"
	venueModel "venuebook/internal/domains/venue/model"
)

// Offer is a priced candidate anchored on the venue-local day it was quoted for.
type Offer struct {
	Venue venueModel.Venue
	Day   time.Time
	Quote engine.Quote
}

func (o Offer) StartAt() time.Time {
	return o.Quote.Start.On(o.Day)
}

func (o Offer) EndAt() time.Time {
	return o.StartAt().Add(time.Duration(o.Quote.Duration) * time.Minute)
}

// DayWindow spans the venue-local calendar day of Day.
func (o Offer) DayWindow() (time.Time, time.Time) {
	return DayWindow(o.Day)
}

// SlotIDs lists the box slots of the offer in part order.
func (o Offer) SlotIDs() []string {
	ids := make([]string, len(o.Quote.Parts))
	for i, part := range o.Quote.Parts {
		ids[i] = part.Slot.ID
	}

	return ids
}

// Matches reports whether the offer is made of exactly slotIDs, in any order.
func (o Offer) Matches(slotIDs []string) bool {
	own := o.SlotIDs()
	if len(own) != len(slotIDs) {
		return false
	}

	wanted := slices.Clone(slotIDs)
	slices.Sort(own)
	slices.Sort(wanted)

	return slices.Equal(own, wanted)
}

func DayWindow(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	return start, start.AddDate(0, 0, 1)
}

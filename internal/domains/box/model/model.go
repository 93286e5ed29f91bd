package model

import "venuebook/shared/walltime"

const (
	TableName  = "boxes"
	EntityName = "box"

	FieldID      = "id"
	FieldVenueID = "venue_id"
	FieldSection = "section"

	SlotTableName  = "box_slots"
	SlotEntityName = "box_slot"

	FieldBoxID      = "box_id"
	FieldScheduleID = "schedule_id"
	FieldDuration   = "duration"

	LinkTableName  = "box_slot_links"
	LinkEntityName = "box_slot_link"

	FieldSlotID       = "box_slot_id"
	FieldLinkedSlotID = "linked_box_slot_id"
)

type Box struct {
	ID      string `db:"id"`
	VenueID string `db:"venue_id"`
	Section string `db:"section"`
	Name    string `db:"name"`
}

// Slot is a recurring bookable template of a box under one schedule.
type Slot struct {
	ID         string            `db:"id"`
	BoxID      string            `db:"box_id"`
	ScheduleID string            `db:"schedule_id"`
	StartTime  walltime.WallTime `db:"start_time"`
	Duration   int               `db:"duration"`
}

func (s Slot) End() walltime.WallTime {
	return s.StartTime.AddMinutes(s.Duration)
}

// Link pairs two slots that may be booked together. The relation is symmetric.
type Link struct {
	ID           string `db:"id"`
	SlotID       string `db:"box_slot_id"`
	LinkedSlotID string `db:"linked_box_slot_id"`
}

// Other returns the slot paired with id, or "" when id is not part of the link.
func (l Link) Other(id string) string {
	switch id {
	case l.SlotID:
		return l.LinkedSlotID
	case l.LinkedSlotID:
		return l.SlotID
	default:
		return ""
	}
}

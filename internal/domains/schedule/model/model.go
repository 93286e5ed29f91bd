package model

import (
	"time"

	"venuebook/shared/walltime"
)

const (
	TableName  = "schedules"
	EntityName = "schedule"

	FieldID   = "id"
	FieldCode = "code"

	VenueScheduleTableName  = "venue_schedules"
	VenueScheduleEntityName = "venue_schedule"

	FieldVenueID    = "venue_id"
	FieldScheduleID = "schedule_id"
)

type Schedule struct {
	ID           string           `db:"id"`
	Name         string           `db:"name"`
	Code         string           `db:"code"`
	DateFrom     *time.Time       `db:"date_from"`
	DateTo       *time.Time       `db:"date_to"`
	AppliedDates walltime.DateSet `db:"applied_dates"`
	DateOfApply  time.Time        `db:"date_of_apply"`
	SortOrder    int              `db:"sort_order"`
}

// IsOverride reports whether the schedule targets explicit calendar days.
func (s Schedule) IsOverride() bool {
	return !s.AppliedDates.Empty()
}

// Covers reports whether day lies inside the optional [DateFrom, DateTo] range, compared by calendar day.
func (s Schedule) Covers(day time.Time) bool {
	key := dayKey(day)

	if s.DateFrom != nil && key < dayKey(*s.DateFrom) {
		return false
	}

	if s.DateTo != nil && key > dayKey(*s.DateTo) {
		return false
	}

	return true
}

func dayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// LinkedSchedule is a schedule read through the venue_schedules join.
type LinkedSchedule struct {
	Schedule
	VenueID string `db:"venue_id" table:"venue_schedules"`
}

func (LinkedSchedule) GetJoinQuery() string {
	return "JOIN venue_schedules ON venue_schedules.schedule_id = schedules.id"
}

// VenueSchedule is a row of the venue_schedules join table.
type VenueSchedule struct {
	ID         string `db:"id"`
	VenueID    string `db:"venue_id"`
	ScheduleID string `db:"schedule_id"`
}

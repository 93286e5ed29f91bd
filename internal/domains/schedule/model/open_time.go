package model

import "venuebook/shared/walltime"

const (
	OpenTimeTableName  = "open_times"
	OpenTimeEntityName = "open_time"

	FieldOpenTimeID = "open_time_id"
	FieldWeekday    = "weekday"
)

// OpenTime bounds the hours a schedule accepts bookings. Legacy rows hang off a venue and carry a weekday.
type OpenTime struct {
	ID         string            `db:"id"`
	ScheduleID *string           `db:"schedule_id"`
	VenueID    *string           `db:"venue_id"`
	Weekday    *int              `db:"weekday"`
	StartTime  walltime.WallTime `db:"start_time"`
	EndTime    walltime.WallTime `db:"end_time"`
}

// End is the exclusive end of the window; a trailing :59 second closes the minute.
func (o OpenTime) End() walltime.WallTime {
	return o.EndTime.CeilMinute()
}

func (o OpenTime) Validate() error {
	return walltime.ValidateRange(o.StartTime, o.EndTime)
}

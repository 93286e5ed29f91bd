package model

const (
	TableName  = "venues"
	EntityName = "venue"

	FieldID         = "id"
	FieldCode       = "code"
	FieldScheduleID = "schedule_id"
)

type Venue struct {
	ID         string  `db:"id"`
	Code       string  `db:"code"`
	Name       string  `db:"name"`
	Timezone   string  `db:"timezone"`
	ScheduleID *string `db:"schedule_id"`
}

// HasBaseSchedule reports whether the venue points at a standing schedule.
func (v Venue) HasBaseSchedule() bool {
	return v.ScheduleID != nil && *v.ScheduleID != ""
}

package engine

import (
	"time"

	scheduleModel "venuebook/internal/domains/schedule/model"
	"venuebook/shared/walltime"
)

// Window decides on which days an open time bounds the bookable hours.
type Window interface {
	AppliesOn(day time.Time) bool
}

// RecurringWindow is the legacy venue-scoped open time repeating every given weekday.
type RecurringWindow struct {
	Weekday time.Weekday
}

func (w RecurringWindow) AppliesOn(day time.Time) bool {
	return day.Weekday() == w.Weekday
}

// ScheduleWindow applies on every day its schedule is the active one.
type ScheduleWindow struct{}

func (ScheduleWindow) AppliesOn(time.Time) bool {
	return true
}

func WindowFor(openTime scheduleModel.OpenTime) Window {
	if openTime.Weekday != nil {
		return RecurringWindow{Weekday: time.Weekday(*openTime.Weekday)}
	}

	return ScheduleWindow{}
}

// ApplicableOpenTimes keeps the open times whose window applies on day.
func ApplicableOpenTimes(openTimes []scheduleModel.OpenTime, day time.Time) []scheduleModel.OpenTime {
	applicable := make([]scheduleModel.OpenTime, 0, len(openTimes))

	for _, openTime := range openTimes {
		if WindowFor(openTime).AppliesOn(day) {
			applicable = append(applicable, openTime)
		}
	}

	return applicable
}

// containing returns the first open time holding [start, end) entirely.
func containing(openTimes []scheduleModel.OpenTime, start, end walltime.WallTime) (scheduleModel.OpenTime, bool) {
	for _, openTime := range openTimes {
		if start >= openTime.StartTime && end <= openTime.End() {
			return openTime, true
		}
	}

	return scheduleModel.OpenTime{}, false
}

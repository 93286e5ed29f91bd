package engine

import (
	"time"

	scheduleModel "venuebook/internal/domains/schedule/model"
	venueModel "venuebook/internal/domains/venue/model"
	"venuebook/shared/failure"
)

// ResolveSchedule picks the single schedule active for the venue on day.
//
// Overrides whose applied dates contain day win, latest date of apply first, then highest
// order, then highest id. Otherwise the venue's base schedule applies. A venue without one
// falls back to the highest-order standing schedule whose optional date range covers day.
// day must already be normalized to the venue timezone.
func ResolveSchedule(venue venueModel.Venue, schedules []scheduleModel.Schedule, day time.Time) (scheduleModel.Schedule, error) {
	var (
		best  scheduleModel.Schedule
		found bool
	)

	for _, schedule := range schedules {
		if !schedule.AppliedDates.Contains(day) {
			continue
		}

		if !found || overrideBeats(schedule, best) {
			best, found = schedule, true
		}
	}

	if found {
		return best, nil
	}

	if venue.HasBaseSchedule() {
		for _, schedule := range schedules {
			if schedule.ID == *venue.ScheduleID {
				return schedule, nil
			}
		}

		return scheduleModel.Schedule{}, failure.UnknownSchedule() // nolint:wrapcheck
	}

	for _, schedule := range schedules {
		if schedule.IsOverride() || !schedule.Covers(day) {
			continue
		}

		if !found || standingBeats(schedule, best) {
			best, found = schedule, true
		}
	}

	if found {
		return best, nil
	}

	return scheduleModel.Schedule{}, failure.UnknownSchedule() // nolint:wrapcheck
}

func overrideBeats(candidate, current scheduleModel.Schedule) bool {
	if !candidate.DateOfApply.Equal(current.DateOfApply) {
		return candidate.DateOfApply.After(current.DateOfApply)
	}

	return standingBeats(candidate, current)
}

func standingBeats(candidate, current scheduleModel.Schedule) bool {
	if candidate.SortOrder != current.SortOrder {
		return candidate.SortOrder > current.SortOrder
	}

	return candidate.ID > current.ID
}

package engine

import (
	"fmt"
	"slices"
	"time"

	"venuebook/config"
	bookingModel "venuebook/internal/domains/booking/model"
	"venuebook/shared/walltime"
)

const (
	DefaultCleanupMinutes   = 10
	DefaultOvertimeUnit     = 10
	DefaultOvertimeBatch    = 3
	DefaultPriceGridMinutes = 15
	DefaultWeekdayCurfew    = "19:00:00"
	DefaultWeekendCurfew    = "16:00:00"
)

// Rules holds the tunable constants of pricing and buffer arithmetic.
type Rules struct {
	CleanupMinutes   int
	OvertimeUnit     int
	OvertimeBatch    int
	PriceGridMinutes int
	WeekdayCurfew    walltime.WallTime
	WeekendCurfew    walltime.WallTime
}

func DefaultRules() Rules {
	return Rules{
		CleanupMinutes:   DefaultCleanupMinutes,
		OvertimeUnit:     DefaultOvertimeUnit,
		OvertimeBatch:    DefaultOvertimeBatch,
		PriceGridMinutes: DefaultPriceGridMinutes,
		WeekdayCurfew:    walltime.MustParse(DefaultWeekdayCurfew),
		WeekendCurfew:    walltime.MustParse(DefaultWeekendCurfew),
	}
}

// RulesFromConfig overlays the configured values on the defaults; zero values keep the default.
func RulesFromConfig(cfg *config.Config) (Rules, error) {
	rules := DefaultRules()
	availability := cfg.Availability

	if availability.CleanupMinutes > 0 {
		rules.CleanupMinutes = availability.CleanupMinutes
	}

	if availability.OvertimeUnitMinutes > 0 {
		rules.OvertimeUnit = availability.OvertimeUnitMinutes
	}

	if availability.OvertimeBatchSize > 0 {
		rules.OvertimeBatch = availability.OvertimeBatchSize
	}

	if availability.PriceGridMinutes > 0 {
		rules.PriceGridMinutes = availability.PriceGridMinutes
	}

	if availability.WeekdayCurfew != "" {
		curfew, err := walltime.Parse("AVAILABILITY_WEEKDAY_CURFEW", availability.WeekdayCurfew)
		if err != nil {
			return rules, fmt.Errorf("invalid weekday curfew: %w", err)
		}

		rules.WeekdayCurfew = curfew
	}

	if availability.WeekendCurfew != "" {
		curfew, err := walltime.Parse("AVAILABILITY_WEEKEND_CURFEW", availability.WeekendCurfew)
		if err != nil {
			return rules, fmt.Errorf("invalid weekend curfew: %w", err)
		}

		rules.WeekendCurfew = curfew
	}

	return rules, nil
}

// SectionOvertime is the extra cleanup, in minutes, for a section with count bookings meeting at a boundary.
func (r Rules) SectionOvertime(count int) int {
	if r.OvertimeBatch <= 0 || count <= 0 {
		return 0
	}

	return count / r.OvertimeBatch * r.OvertimeUnit
}

// EnoughTimeBefore holds when start leaves room for the prior booking plus cleanup and overtime.
func (r Rules) EnoughTimeBefore(start, priorStart time.Time, priorDuration, overtime int) bool {
	required := time.Duration(priorDuration+r.CleanupMinutes+overtime) * time.Minute

	return start.Sub(priorStart) >= required
}

// Over18 reports whether start is at or past the curfew of day's class. Saturday and Sunday are weekend.
func (r Rules) Over18(day time.Time, start walltime.WallTime) bool {
	curfew := r.WeekdayCurfew
	if weekday := day.Weekday(); weekday == time.Saturday || weekday == time.Sunday {
		curfew = r.WeekendCurfew
	}

	return start >= curfew
}

// CountBoundary counts distinct active bookings of section starting or ending exactly at boundary.
func CountBoundary(occupancies []bookingModel.Occupancy, section string, boundary time.Time) int {
	bookings := []string{}

	for _, occupancy := range occupancies {
		if occupancy.Section != section {
			continue
		}

		if !occupancy.StartAt.Equal(boundary) && !occupancy.EndAt.Equal(boundary) {
			continue
		}

		if !slices.Contains(bookings, occupancy.BookingID) {
			bookings = append(bookings, occupancy.BookingID)
		}
	}

	return len(bookings)
}

// Clear reports whether a booking of boxes over [start, end) keeps the cleanup and section overtime
// gap to every occupancy of the same boxes.
func (r Rules) Clear(boxes []Part, start, end time.Time, occupancies []bookingModel.Occupancy) bool {
	duration := int(end.Sub(start) / time.Minute)

	for _, part := range boxes {
		for _, occupancy := range occupancies {
			if occupancy.BoxID != part.Box.ID {
				continue
			}

			if !occupancy.StartAt.After(start) {
				overtime := r.SectionOvertime(CountBoundary(occupancies, part.Box.Section, occupancy.EndAt))
				priorDuration := int(occupancy.EndAt.Sub(occupancy.StartAt) / time.Minute)

				if !r.EnoughTimeBefore(start, occupancy.StartAt, priorDuration, overtime) {
					return false
				}

				continue
			}

			overtime := r.SectionOvertime(CountBoundary(occupancies, part.Box.Section, end))
			if !r.EnoughTimeBefore(occupancy.StartAt, start, duration, overtime) {
				return false
			}
		}
	}

	return true
}

package engine_test

import (
	"time"

	boxModel "venuebook/internal/domains/box/model"
	scheduleModel "venuebook/internal/domains/schedule/model"
	venueModel "venuebook/internal/domains/venue/model"
	"venuebook/shared/walltime"
)

var (
	monday   = time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2021, 1, 9, 0, 0, 0, 0, time.UTC)
)

func ptr[T any](v T) *T {
	return &v
}

func venue(baseSchedule string) venueModel.Venue {
	v := venueModel.Venue{ID: "venue-1", Code: "V1", Name: "Arena", Timezone: "UTC"}
	if baseSchedule != "" {
		v.ScheduleID = ptr(baseSchedule)
	}

	return v
}

func openTime(id, scheduleID, start, end string) scheduleModel.OpenTime {
	return scheduleModel.OpenTime{
		ID:         id,
		ScheduleID: ptr(scheduleID),
		StartTime:  walltime.MustParse(start),
		EndTime:    walltime.MustParse(end),
	}
}

func price(id, openTimeID, tier, start, end string, amount int64, order int) scheduleModel.Price {
	return scheduleModel.Price{
		ID:         id,
		OpenTimeID: openTimeID,
		StartTime:  walltime.MustParse(start),
		EndTime:    walltime.MustParse(end),
		Type:       tier,
		Price:      amount,
		SortOrder:  order,
	}
}

func slot(id, boxID, scheduleID, start string, duration int) boxModel.Slot {
	return boxModel.Slot{
		ID:         id,
		BoxID:      boxID,
		ScheduleID: scheduleID,
		StartTime:  walltime.MustParse(start),
		Duration:   duration,
	}
}

// mondayFixture is box-1 with slots 11:00/90, 12:40/60, 13:50/90 and 16:40/60,
// open 06:00-22:00, off-peak 1001 until 15:59 then peak 2001.
func mondayFixture(duration int) engineInput {
	return engineInput{
		boxes: []boxModel.Box{{ID: "box-1", VenueID: "venue-1", Section: "A", Name: "Box 1"}},
		slots: []boxModel.Slot{
			slot("slot-1", "box-1", "sch-base", "11:00:00", 90),
			slot("slot-2", "box-1", "sch-base", "12:40:00", 60),
			slot("slot-3", "box-1", "sch-base", "13:50:00", 90),
			slot("slot-4", "box-1", "sch-base", "16:40:00", 60),
		},
		openTimes: []scheduleModel.OpenTime{openTime("ot-1", "sch-base", "06:00:00", "22:00:00")},
		prices: []scheduleModel.Price{
			price("price-1", "ot-1", scheduleModel.TierOffPeak, "06:00:00", "15:59:00", 1001, 1),
			price("price-2", "ot-1", scheduleModel.TierPeak, "16:00:00", "22:00:00", 2001, 1),
		},
		duration: duration,
	}
}

type engineInput struct {
	boxes     []boxModel.Box
	slots     []boxModel.Slot
	links     []boxModel.Link
	openTimes []scheduleModel.OpenTime
	prices    []scheduleModel.Price
	duration  int
}

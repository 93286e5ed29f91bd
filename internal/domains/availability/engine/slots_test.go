package engine_test

import (
	"testing"

	"venuebook/internal/domains/availability/engine"
	boxModel "venuebook/internal/domains/box/model"
	scheduleModel "venuebook/internal/domains/schedule/model"
	"venuebook/shared/walltime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(in engineInput) []engine.Candidate {
	return engine.GenerateSlots(engine.SlotInput{
		ScheduleID: "sch-base",
		Day:        monday,
		Duration:   in.duration,
		Boxes:      in.boxes,
		Slots:      in.slots,
		Links:      in.links,
		OpenTimes:  in.openTimes,
	})
}

func starts(candidates []engine.Candidate) []string {
	out := make([]string, len(candidates))
	for i, candidate := range candidates {
		out[i] = candidate.Start.String() + "@" + candidate.BoxID()
	}

	return out
}

func TestGenerateSlotsFiltersByDuration(t *testing.T) {
	assert.Equal(t, []string{"11:00:00@box-1", "13:50:00@box-1"}, starts(generate(mondayFixture(90))))
	assert.Equal(t, []string{"12:40:00@box-1", "16:40:00@box-1"}, starts(generate(mondayFixture(60))))
	assert.Empty(t, generate(mondayFixture(45)))
}

func TestGenerateSlotsExcludesOutsideOpenTime(t *testing.T) {
	in := mondayFixture(60)
	in.slots = append(in.slots,
		slot("slot-early", "box-1", "sch-base", "05:30:00", 60),
		slot("slot-late", "box-1", "sch-base", "21:30:00", 60),
		slot("slot-edge", "box-1", "sch-base", "21:00:00", 60),
	)

	assert.Equal(t, []string{"12:40:00@box-1", "16:40:00@box-1", "21:00:00@box-1"}, starts(generate(in)))
}

func TestGenerateSlotsCeilsOpenTimeEnd(t *testing.T) {
	in := mondayFixture(60)
	in.openTimes = []scheduleModel.OpenTime{openTime("ot-1", "sch-base", "06:00:00", "17:39:59")}

	assert.Equal(t, []string{"12:40:00@box-1", "16:40:00@box-1"}, starts(generate(in)))

	in.openTimes = []scheduleModel.OpenTime{openTime("ot-1", "sch-base", "06:00:00", "17:39:00")}

	assert.Equal(t, []string{"12:40:00@box-1"}, starts(generate(in)))
}

func TestGenerateSlotsIgnoresForeignBoxesAndSchedules(t *testing.T) {
	in := mondayFixture(60)
	in.slots = append(in.slots,
		slot("slot-other-venue", "box-x", "sch-base", "09:00:00", 60),
		slot("slot-other-schedule", "box-1", "sch-holiday", "09:00:00", 60),
	)

	assert.Equal(t, []string{"12:40:00@box-1", "16:40:00@box-1"}, starts(generate(in)))
}

func TestGenerateSlotsRecurringWindow(t *testing.T) {
	in := mondayFixture(60)

	tuesdayOnly := openTime("ot-tue", "sch-base", "06:00:00", "22:00:00")
	tuesdayOnly.Weekday = ptr(2)
	in.openTimes = []scheduleModel.OpenTime{tuesdayOnly}

	assert.Empty(t, generate(in))

	mondayOnly := tuesdayOnly
	mondayOnly.Weekday = ptr(1)
	in.openTimes = []scheduleModel.OpenTime{tuesdayOnly, mondayOnly}

	assert.Len(t, generate(in), 2)
}

func TestGenerateSlotsOrdersByStartThenBox(t *testing.T) {
	in := mondayFixture(60)
	in.boxes = append(in.boxes,
		boxModel.Box{ID: "box-0", VenueID: "venue-1", Section: "A"},
		boxModel.Box{ID: "box-2", VenueID: "venue-1", Section: "B"},
	)
	in.slots = append(in.slots,
		slot("slot-5", "box-2", "sch-base", "12:40:00", 60),
		slot("slot-6", "box-0", "sch-base", "12:40:00", 60),
		slot("slot-7", "box-2", "sch-base", "08:00:00", 60),
	)

	want := []string{"08:00:00@box-2", "12:40:00@box-0", "12:40:00@box-1", "12:40:00@box-2", "16:40:00@box-1"}

	assert.Equal(t, want, starts(generate(in)))
	assert.Equal(t, want, starts(generate(in)), "repeated generation must be identical")
}

func TestGenerateSlotsCombinesLinkedSlots(t *testing.T) {
	in := engineInput{
		boxes: []boxModel.Box{
			{ID: "box-1", VenueID: "venue-1", Section: "A"},
			{ID: "box-2", VenueID: "venue-1", Section: "A"},
		},
		slots: []boxModel.Slot{
			slot("slot-a", "box-1", "sch-base", "10:00:00", 60),
			slot("slot-b", "box-2", "sch-base", "10:00:00", 60),
			slot("slot-c", "box-1", "sch-base", "11:00:00", 60),
		},
		links: []boxModel.Link{
			{ID: "link-1", SlotID: "slot-a", LinkedSlotID: "slot-b"},
			{ID: "link-2", SlotID: "slot-b", LinkedSlotID: "slot-a"},
			{ID: "link-3", SlotID: "slot-a", LinkedSlotID: "slot-c"},
		},
		openTimes: []scheduleModel.OpenTime{openTime("ot-1", "sch-base", "06:00:00", "22:00:00")},
	}

	in.duration = 60
	sixty := generate(in)
	require.Len(t, sixty, 4)
	assert.Equal(t, []string{"10:00:00@box-1", "10:00:00@box-1", "10:00:00@box-2", "11:00:00@box-1"}, starts(sixty))
	assert.False(t, sixty[0].Combined())
	assert.True(t, sixty[1].Combined())
	assert.Equal(t, []string{"box-1", "box-2"}, sixty[1].BoxIDs())

	in.duration = 120
	paired := generate(in)
	require.Len(t, paired, 1)
	assert.Equal(t, walltime.MustParse("10:00:00"), paired[0].Start)
	assert.Equal(t, walltime.MustParse("12:00:00"), paired[0].End())
	assert.Equal(t, "slot-a", paired[0].SlotID())
}

func TestGenerateSlotsCombinedNeedsBothHalvesOpen(t *testing.T) {
	in := engineInput{
		boxes: []boxModel.Box{{ID: "box-1", VenueID: "venue-1", Section: "A"}},
		slots: []boxModel.Slot{
			slot("slot-a", "box-1", "sch-base", "20:00:00", 60),
			slot("slot-b", "box-1", "sch-base", "21:00:00", 60),
		},
		links:     []boxModel.Link{{ID: "link-1", SlotID: "slot-a", LinkedSlotID: "slot-b"}},
		openTimes: []scheduleModel.OpenTime{openTime("ot-1", "sch-base", "06:00:00", "21:30:00")},
		duration:  120,
	}

	assert.Empty(t, generate(in))
}

package helper_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"venuebook/helper"
	boxMocks "venuebook/internal/domains/box/mocks"
	boxModel "venuebook/internal/domains/box/model"
	scheduleMocks "venuebook/internal/domains/schedule/mocks"
	scheduleModel "venuebook/internal/domains/schedule/model"
	venueMocks "venuebook/internal/domains/venue/mocks"
	venueModel "venuebook/internal/domains/venue/model"
	"venuebook/shared/failure"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const fixturesTOML = `
[[schedules]]
code = "BASE"
name = "Base"

  [[schedules.open_times]]
  start = "08:00:00"
  end = "22:00:00"

    [[schedules.open_times.prices]]
    start = "08:00:00"
    end = "16:00:00"
    type = "off-peak"
    price = 1001

    [[schedules.open_times.prices]]
    start = "16:00:00"
    end = "22:00:00"
    type = "peak"
    price = 2001

[[schedules]]
code = "XMAS"
name = "Christmas"
applied_dates = ["2021-12-25"]
date_of_apply = "2021-11-01T00:00:00Z"

[[venues]]
code = "V1"
name = "Venue One"
timezone = "Europe/London"
schedule = "BASE"
schedules = ["XMAS"]
links = [["a1", "a2"]]

  [[venues.open_times]]
  weekday = 0
  start = "10:00:00"
  end = "16:00:00"

  [[venues.boxes]]
  name = "Box 1"
  section = "A"

    [[venues.boxes.slots]]
    key = "a1"
    schedule = "BASE"
    start = "16:40:00"
    duration = 60

  [[venues.boxes]]
  name = "Box 2"
  section = "A"

    [[venues.boxes.slots]]
    key = "a2"
    schedule = "BASE"
    start = "16:40:00"
    duration = 60
`

func decode(t *testing.T, data string) helper.Fixtures {
	t.Helper()

	var fixtures helper.Fixtures
	_, err := toml.Decode(data, &fixtures)
	require.NoError(t, err)

	return fixtures
}

func TestBuildPlan(t *testing.T) {
	plan, err := helper.BuildPlan(decode(t, fixturesTOML))
	require.NoError(t, err)

	require.Len(t, plan.Schedules, 2)
	require.Len(t, plan.Venues, 1)
	require.Len(t, plan.VenueSchedules, 1)
	require.Len(t, plan.OpenTimes, 2)
	require.Len(t, plan.Prices, 2)
	require.Len(t, plan.Boxes, 2)
	require.Len(t, plan.Slots, 2)
	require.Len(t, plan.Links, 1)

	base, xmas := plan.Schedules[0], plan.Schedules[1]
	venue := plan.Venues[0]

	require.NotNil(t, venue.ScheduleID)
	assert.Equal(t, base.ID, *venue.ScheduleID)
	assert.Equal(t, xmas.ID, plan.VenueSchedules[0].ScheduleID)
	assert.True(t, xmas.AppliedDates.Contains(time.Date(2021, time.December, 25, 10, 0, 0, 0, time.UTC)))

	assert.Equal(t, base.ID, *plan.OpenTimes[0].ScheduleID)
	assert.Nil(t, plan.OpenTimes[0].VenueID)
	assert.Equal(t, venue.ID, *plan.OpenTimes[1].VenueID)
	assert.Equal(t, 0, *plan.OpenTimes[1].Weekday)

	assert.Equal(t, plan.OpenTimes[0].ID, plan.Prices[1].OpenTimeID)
	assert.Equal(t, scheduleModel.TierPeak, plan.Prices[1].Type)
	assert.EqualValues(t, 2001, plan.Prices[1].Price)

	assert.Equal(t, plan.Slots[0].ID, plan.Links[0].SlotID)
	assert.Equal(t, plan.Slots[1].ID, plan.Links[0].LinkedSlotID)

	again, err := helper.BuildPlan(decode(t, fixturesTOML))
	require.NoError(t, err)
	assert.Equal(t, plan.Slots[0].ID, again.Slots[0].ID)
	assert.Equal(t, plan.Schedules, again.Schedules)
}

func TestBuildPlan_DateOfApplyDefaults(t *testing.T) {
	plan, err := helper.BuildPlan(decode(t, `
[[schedules]]
code = "BASE"

[[schedules]]
code = "SUMMER"
date_from = "2021-06-01"
date_to = "2021-08-31"

[[schedules]]
code = "XMAS"
date_from = "2021-12-01"
date_of_apply = "2021-11-01T00:00:00Z"
`))
	require.NoError(t, err)
	require.Len(t, plan.Schedules, 3)

	assert.Equal(t, time.Unix(0, 0).UTC(), plan.Schedules[0].DateOfApply)
	assert.Equal(t, time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC), plan.Schedules[1].DateOfApply)
	assert.Equal(t, time.Date(2021, time.November, 1, 0, 0, 0, 0, time.UTC), plan.Schedules[2].DateOfApply)
}

func TestBuildPlan_LegacyOpenTimesPerWeekday(t *testing.T) {
	plan, err := helper.BuildPlan(decode(t, `
[[venues]]
code = "V1"
  [[venues.open_times]]
  weekday = 1
  start = "08:00:00"
  end = "22:00:00"
  [[venues.open_times]]
  weekday = 2
  start = "08:00:00"
  end = "22:00:00"
  [[venues.open_times]]
  start = "10:00:00"
  end = "16:00:00"
`))
	require.NoError(t, err)
	assert.Len(t, plan.OpenTimes, 3)
}

func TestBuildPlan_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		wantReason string
		wantCode   int
	}{
		{
			name: "bad time format",
			data: `
[[schedules]]
code = "BASE"
  [[schedules.open_times]]
  start = "8am"
  end = "22:00:00"
`,
			wantReason: failure.ReasonInvalidTimeFormat,
		},
		{
			name: "inverted range",
			data: `
[[schedules]]
code = "BASE"
  [[schedules.open_times]]
  start = "22:00:00"
  end = "08:00:00"
`,
			wantReason: failure.ReasonInvalidRange,
		},
		{
			name: "bad applied date",
			data: `
[[schedules]]
code = "XMAS"
applied_dates = ["25/12/2021"]
`,
			wantReason: failure.ReasonInvalidDate,
		},
		{
			name: "unknown tier",
			data: `
[[schedules]]
code = "BASE"
  [[schedules.open_times]]
  start = "08:00:00"
  end = "22:00:00"
    [[schedules.open_times.prices]]
    start = "08:00:00"
    end = "22:00:00"
    type = "mega-peak"
    price = 1
`,
			wantCode: 400,
		},
		{
			name: "unknown schedule reference",
			data: `
[[venues]]
code = "V1"
schedule = "NOPE"
`,
			wantReason: failure.ReasonUnknownSchedule,
		},
		{
			name: "two legacy open times on one weekday",
			data: `
[[venues]]
code = "V1"
  [[venues.open_times]]
  weekday = 1
  start = "08:00:00"
  end = "12:00:00"
  [[venues.open_times]]
  weekday = 1
  start = "13:00:00"
  end = "22:00:00"
`,
			wantCode: 400,
		},
		{
			name: "dangling slot link",
			data: `
[[venues]]
code = "V1"
links = [["a1", "missing"]]
`,
			wantCode: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := helper.BuildPlan(decode(t, tt.data))
			require.Error(t, err)

			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, failure.GetReason(err))
			}

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestSeeder_SeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.toml")
	require.NoError(t, os.WriteFile(path, []byte(fixturesTOML), 0o600))

	ctrl := gomock.NewController(t)
	venues := venueMocks.NewMockVenue(ctrl)
	schedules := scheduleMocks.NewMockSchedule(ctrl)
	boxes := boxMocks.NewMockBox(ctrl)

	var seededVenue venueModel.Venue

	gomock.InOrder(
		schedules.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(2).Return(nil),
		venues.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, venue venueModel.Venue) error {
			seededVenue = venue

			return nil
		}),
		schedules.EXPECT().LinkVenue(gomock.Any(), gomock.Any()).Return(nil),
		schedules.EXPECT().InsertOpenTime(gomock.Any(), gomock.Any()).Times(2).Return(nil),
		schedules.EXPECT().InsertPrice(gomock.Any(), gomock.Any()).Times(2).Return(nil),
		boxes.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(2).Return(nil),
		boxes.EXPECT().InsertSlot(gomock.Any(), gomock.Any()).Times(2).Return(nil),
		boxes.EXPECT().InsertLink(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, link boxModel.Link) error {
			assert.NotEqual(t, link.SlotID, link.LinkedSlotID)

			return nil
		}),
	)

	err := helper.NewSeeder(venues, schedules, boxes).SeedFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "V1", seededVenue.Code)
	assert.Equal(t, "Europe/London", seededVenue.Timezone)
}

func TestSeeder_SeedStopsOnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	schedules := scheduleMocks.NewMockSchedule(ctrl)

	schedules.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(assert.AnError)

	plan, err := helper.BuildPlan(decode(t, fixturesTOML))
	require.NoError(t, err)

	err = helper.NewSeeder(venueMocks.NewMockVenue(ctrl), schedules, boxMocks.NewMockBox(ctrl)).Seed(context.Background(), plan)
	require.ErrorIs(t, err, assert.AnError)
}

func TestLoadFixtures_MissingFile(t *testing.T) {
	_, err := helper.LoadFixtures(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

package helper

import (
	"context"
	"fmt"
	"time"

	boxModel "venuebook/internal/domains/box/model"
	boxRepo "venuebook/internal/domains/box/repository"
	scheduleModel "venuebook/internal/domains/schedule/model"
	scheduleRepo "venuebook/internal/domains/schedule/repository"
	venueModel "venuebook/internal/domains/venue/model"
	venueRepo "venuebook/internal/domains/venue/repository"
	"venuebook/shared/constant"
	"venuebook/shared/failure"
	"venuebook/shared/walltime"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Fixtures is the TOML layout read by `migrate seed <file>`. Entities refer to each other by code or key;
// ids are derived from those so a fixture always seeds the same ids.
type Fixtures struct {
	Schedules []ScheduleFixture `toml:"schedules"`
	Venues    []VenueFixture    `toml:"venues"`
}

type ScheduleFixture struct {
	Code         string            `toml:"code"`
	Name         string            `toml:"name"`
	DateFrom     string            `toml:"date_from"`
	DateTo       string            `toml:"date_to"`
	AppliedDates []string          `toml:"applied_dates"`
	DateOfApply  string            `toml:"date_of_apply"`
	SortOrder    int               `toml:"sort_order"`
	OpenTimes    []OpenTimeFixture `toml:"open_times"`
}

type OpenTimeFixture struct {
	Weekday *int           `toml:"weekday"`
	Start   string         `toml:"start"`
	End     string         `toml:"end"`
	Prices  []PriceFixture `toml:"prices"`
}

type PriceFixture struct {
	Start     string `toml:"start"`
	End       string `toml:"end"`
	Type      string `toml:"type"`
	Price     int64  `toml:"price"`
	SortOrder int    `toml:"sort_order"`
}

type VenueFixture struct {
	Code      string            `toml:"code"`
	Name      string            `toml:"name"`
	Timezone  string            `toml:"timezone"`
	Schedule  string            `toml:"schedule"`
	Schedules []string          `toml:"schedules"`
	OpenTimes []OpenTimeFixture `toml:"open_times"`
	Boxes     []BoxFixture      `toml:"boxes"`
	Links     [][]string        `toml:"links"`
}

type BoxFixture struct {
	Name    string        `toml:"name"`
	Section string        `toml:"section"`
	Slots   []SlotFixture `toml:"slots"`
}

type SlotFixture struct {
	Key      string `toml:"key"`
	Schedule string `toml:"schedule"`
	Start    string `toml:"start"`
	Duration int    `toml:"duration"`
}

// Plan is a validated fixture in insertion order.
type Plan struct {
	Schedules      []scheduleModel.Schedule
	Venues         []venueModel.Venue
	VenueSchedules []scheduleModel.VenueSchedule
	OpenTimes      []scheduleModel.OpenTime
	Prices         []scheduleModel.Price
	Boxes          []boxModel.Box
	Slots          []boxModel.Slot
	Links          []boxModel.Link
}

type Seeder struct {
	venues    venueRepo.Venue
	schedules scheduleRepo.Schedule
	boxes     boxRepo.Box
}

func NewSeeder(venues venueRepo.Venue, schedules scheduleRepo.Schedule, boxes boxRepo.Box) *Seeder {
	return &Seeder{
		venues:    venues,
		schedules: schedules,
		boxes:     boxes,
	}
}

func LoadFixtures(path string) (Fixtures, error) {
	var fixtures Fixtures

	if _, err := toml.DecodeFile(path, &fixtures); err != nil {
		return fixtures, fmt.Errorf("failed to decode fixtures %s: %w", path, err)
	}

	return fixtures, nil
}

// SeedFile validates the whole fixture before writing anything.
func (s *Seeder) SeedFile(ctx context.Context, path string) error {
	fixtures, err := LoadFixtures(path)
	if err != nil {
		return err
	}

	plan, err := BuildPlan(fixtures)
	if err != nil {
		return err
	}

	return s.Seed(ctx, plan)
}

func (s *Seeder) Seed(ctx context.Context, plan Plan) error {
	for _, schedule := range plan.Schedules {
		if err := s.schedules.Insert(ctx, schedule); err != nil {
			return fmt.Errorf("failed to seed schedule %s: %w", schedule.Code, err)
		}
	}

	for _, venue := range plan.Venues {
		if err := s.venues.Insert(ctx, venue); err != nil {
			return fmt.Errorf("failed to seed venue %s: %w", venue.Code, err)
		}
	}

	for _, link := range plan.VenueSchedules {
		if err := s.schedules.LinkVenue(ctx, link); err != nil {
			return fmt.Errorf("failed to link venue schedule: %w", err)
		}
	}

	for _, openTime := range plan.OpenTimes {
		if err := s.schedules.InsertOpenTime(ctx, openTime); err != nil {
			return fmt.Errorf("failed to seed open time: %w", err)
		}
	}

	for _, price := range plan.Prices {
		if err := s.schedules.InsertPrice(ctx, price); err != nil {
			return fmt.Errorf("failed to seed price: %w", err)
		}
	}

	for _, box := range plan.Boxes {
		if err := s.boxes.Insert(ctx, box); err != nil {
			return fmt.Errorf("failed to seed box %s: %w", box.Name, err)
		}
	}

	for _, slot := range plan.Slots {
		if err := s.boxes.InsertSlot(ctx, slot); err != nil {
			return fmt.Errorf("failed to seed box slot: %w", err)
		}
	}

	for _, link := range plan.Links {
		if err := s.boxes.InsertLink(ctx, link); err != nil {
			return fmt.Errorf("failed to seed box slot link: %w", err)
		}
	}

	log.Info().
		Int("schedules", len(plan.Schedules)).
		Int("venues", len(plan.Venues)).
		Int("boxes", len(plan.Boxes)).
		Int("slots", len(plan.Slots)).
		Msg("Fixtures seeded successfully")

	return nil
}

func seedID(kind string, parts ...any) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, fmt.Appendf(nil, "venuebook/%s/%v", kind, parts)).String()
}

// BuildPlan validates fixtures and resolves their references. Time values must be HH:mm:ss (013)
// and every start must precede its end (014).
func BuildPlan(fixtures Fixtures) (Plan, error) {
	plan := Plan{}
	scheduleIDs := map[string]string{}

	for _, fixture := range fixtures.Schedules {
		schedule, err := buildSchedule(fixture)
		if err != nil {
			return plan, err
		}

		scheduleIDs[fixture.Code] = schedule.ID
		plan.Schedules = append(plan.Schedules, schedule)

		for i, openTimeFixture := range fixture.OpenTimes {
			scheduleID := schedule.ID
			owner := openTimeOwner{scheduleID: &scheduleID, key: fixture.Code}

			if err := plan.addOpenTime(owner, i, openTimeFixture); err != nil {
				return plan, err
			}
		}
	}

	for _, fixture := range fixtures.Venues {
		if err := plan.addVenue(fixture, scheduleIDs); err != nil {
			return plan, err
		}
	}

	return plan, nil
}

func buildSchedule(fixture ScheduleFixture) (scheduleModel.Schedule, error) {
	schedule := scheduleModel.Schedule{
		ID:        seedID(scheduleModel.EntityName, fixture.Code),
		Code:      fixture.Code,
		Name:      fixture.Name,
		SortOrder: fixture.SortOrder,
	}

	if fixture.Code == constant.Empty {
		return schedule, failure.BadRequestFromString("schedule code is required") //nolint:wrapcheck
	}

	var err error

	if schedule.DateFrom, err = optionalDay(fixture.DateFrom); err != nil {
		return schedule, err
	}

	if schedule.DateTo, err = optionalDay(fixture.DateTo); err != nil {
		return schedule, err
	}

	if schedule.DateFrom != nil && schedule.DateTo != nil && schedule.DateTo.Before(*schedule.DateFrom) {
		return schedule, failure.InvalidRange
	}

	if schedule.AppliedDates, err = walltime.ParseDateSet(fixture.AppliedDates...); err != nil {
		return schedule, err //nolint:wrapcheck
	}

	schedule.DateOfApply = defaultDateOfApply
	if schedule.DateFrom != nil {
		schedule.DateOfApply = *schedule.DateFrom
	}

	if fixture.DateOfApply != constant.Empty {
		if schedule.DateOfApply, err = time.Parse(constant.DateFormat, fixture.DateOfApply); err != nil {
			return schedule, failure.InvalidDate
		}
	}

	return schedule, nil
}

func optionalDay(value string) (*time.Time, error) {
	if value == constant.Empty {
		return nil, nil //nolint:nilnil
	}

	day, err := time.Parse(constant.DayFormat, value)
	if err != nil {
		return nil, failure.InvalidDate
	}

	return &day, nil
}

// anyWeekday keys a legacy open time without a weekday, matching the unique index on open_times.
const anyWeekday = -1

// defaultDateOfApply applies when a schedule gives neither date_of_apply nor date_from.
var defaultDateOfApply = time.Unix(0, 0).UTC()

type openTimeOwner struct {
	scheduleID *string
	venueID    *string
	key        string
}

func (p *Plan) addOpenTime(owner openTimeOwner, index int, fixture OpenTimeFixture) error {
	start, err := walltime.Parse("open_times.start", fixture.Start)
	if err != nil {
		return err //nolint:wrapcheck
	}

	end, err := walltime.Parse("open_times.end", fixture.End)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if fixture.Weekday != nil && (*fixture.Weekday < int(time.Sunday) || *fixture.Weekday > int(time.Saturday)) {
		return failure.BadRequestFromString("weekday must be between 0 (Sunday) and 6 (Saturday)") //nolint:wrapcheck
	}

	openTime := scheduleModel.OpenTime{
		ID:         seedID(scheduleModel.OpenTimeEntityName, owner.key, index),
		ScheduleID: owner.scheduleID,
		VenueID:    owner.venueID,
		Weekday:    fixture.Weekday,
		StartTime:  start,
		EndTime:    end,
	}

	if err := openTime.Validate(); err != nil {
		return err //nolint:wrapcheck
	}

	p.OpenTimes = append(p.OpenTimes, openTime)

	for i, priceFixture := range fixture.Prices {
		price, err := buildPrice(openTime.ID, i, priceFixture)
		if err != nil {
			return err
		}

		p.Prices = append(p.Prices, price)
	}

	return nil
}

func buildPrice(openTimeID string, index int, fixture PriceFixture) (scheduleModel.Price, error) {
	price := scheduleModel.Price{
		ID:         seedID(scheduleModel.PriceEntityName, openTimeID, index),
		OpenTimeID: openTimeID,
		Type:       fixture.Type,
		Price:      fixture.Price,
		SortOrder:  fixture.SortOrder,
	}

	var err error

	if price.StartTime, err = walltime.Parse("prices.start", fixture.Start); err != nil {
		return price, err //nolint:wrapcheck
	}

	if price.EndTime, err = walltime.Parse("prices.end", fixture.End); err != nil {
		return price, err //nolint:wrapcheck
	}

	if err = price.Validate(); err != nil {
		return price, err //nolint:wrapcheck
	}

	if !scheduleModel.ValidTier(price.Type) {
		return price, failure.BadRequestFromString("price type must be one of off-peak, peak, super-peak") //nolint:wrapcheck
	}

	return price, nil
}

func (p *Plan) addVenue(fixture VenueFixture, scheduleIDs map[string]string) error {
	venue := venueModel.Venue{
		ID:       seedID(venueModel.EntityName, fixture.Code),
		Code:     fixture.Code,
		Name:     fixture.Name,
		Timezone: fixture.Timezone,
	}

	if venue.Code == constant.Empty {
		return failure.BadRequestFromString("venue code is required") //nolint:wrapcheck
	}

	if venue.Timezone == constant.Empty {
		venue.Timezone = time.UTC.String()
	}

	if _, err := time.LoadLocation(venue.Timezone); err != nil {
		return failure.BadRequestFromString("unknown timezone " + venue.Timezone) //nolint:wrapcheck
	}

	if fixture.Schedule != constant.Empty {
		scheduleID, ok := scheduleIDs[fixture.Schedule]
		if !ok {
			return failure.UnknownSchedule() //nolint:wrapcheck
		}

		venue.ScheduleID = &scheduleID
	}

	p.Venues = append(p.Venues, venue)

	for _, code := range fixture.Schedules {
		scheduleID, ok := scheduleIDs[code]
		if !ok {
			return failure.UnknownSchedule() //nolint:wrapcheck
		}

		p.VenueSchedules = append(p.VenueSchedules, scheduleModel.VenueSchedule{
			ID:         seedID(scheduleModel.VenueScheduleEntityName, venue.ID, scheduleID),
			VenueID:    venue.ID,
			ScheduleID: scheduleID,
		})
	}

	weekdays := map[int]bool{}

	for i, openTimeFixture := range fixture.OpenTimes {
		weekday := anyWeekday
		if openTimeFixture.Weekday != nil {
			weekday = *openTimeFixture.Weekday
		}

		if weekdays[weekday] {
			return failure.BadRequestFromString(fmt.Sprintf("venue %s has more than one open time for weekday %d", venue.Code, weekday)) //nolint:wrapcheck
		}

		weekdays[weekday] = true

		venueID := venue.ID
		owner := openTimeOwner{venueID: &venueID, key: venue.Code}

		if err := p.addOpenTime(owner, i, openTimeFixture); err != nil {
			return err
		}
	}

	slotIDs := map[string]string{}

	for _, boxFixture := range fixture.Boxes {
		box := boxModel.Box{
			ID:      seedID(boxModel.EntityName, venue.Code, boxFixture.Name),
			VenueID: venue.ID,
			Section: boxFixture.Section,
			Name:    boxFixture.Name,
		}

		p.Boxes = append(p.Boxes, box)

		for i, slotFixture := range boxFixture.Slots {
			slot, err := buildSlot(box, i, slotFixture, scheduleIDs)
			if err != nil {
				return err
			}

			if slotFixture.Key != constant.Empty {
				slotIDs[slotFixture.Key] = slot.ID
			}

			p.Slots = append(p.Slots, slot)
		}
	}

	for _, pair := range fixture.Links {
		if len(pair) != 2 {
			return failure.BadRequestFromString("a slot link pairs exactly two slot keys") //nolint:wrapcheck
		}

		from, fromOK := slotIDs[pair[0]]
		to, toOK := slotIDs[pair[1]]

		if !fromOK || !toOK || from == to {
			return failure.BadRequestFromString(fmt.Sprintf("invalid slot link %v", pair)) //nolint:wrapcheck
		}

		p.Links = append(p.Links, boxModel.Link{
			ID:           seedID(boxModel.LinkEntityName, from, to),
			SlotID:       from,
			LinkedSlotID: to,
		})
	}

	return nil
}

func buildSlot(box boxModel.Box, index int, fixture SlotFixture, scheduleIDs map[string]string) (boxModel.Slot, error) {
	scheduleID, ok := scheduleIDs[fixture.Schedule]
	if !ok {
		return boxModel.Slot{}, failure.UnknownSchedule() //nolint:wrapcheck
	}

	start, err := walltime.Parse("slots.start", fixture.Start)
	if err != nil {
		return boxModel.Slot{}, err //nolint:wrapcheck
	}

	if fixture.Duration <= 0 {
		return boxModel.Slot{}, failure.BadRequestFromString("slot duration must be positive") //nolint:wrapcheck
	}

	return boxModel.Slot{
		ID:         seedID(boxModel.SlotEntityName, box.ID, index),
		BoxID:      box.ID,
		ScheduleID: scheduleID,
		StartTime:  start,
		Duration:   fixture.Duration,
	}, nil
}

package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"venuebook/config"
	"venuebook/infras/metrics"
	"venuebook/infras/otel"
	"venuebook/internal/domains/availability/engine"
	"venuebook/internal/domains/availability/model"
	"venuebook/internal/domains/availability/model/dto"
	bookingModel "venuebook/internal/domains/booking/model"
	bookingRepo "venuebook/internal/domains/booking/repository"
	boxModel "venuebook/internal/domains/box/model"
	boxRepo "venuebook/internal/domains/box/repository"
	scheduleModel "venuebook/internal/domains/schedule/model"
	scheduleRepo "venuebook/internal/domains/schedule/repository"
	venueModel "venuebook/internal/domains/venue/model"
	venueRepo "venuebook/internal/domains/venue/repository"
	"venuebook/shared"
	"venuebook/shared/cache"
	"venuebook/shared/constant"
	"venuebook/shared/failure"
	"venuebook/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Availability interface {
	Get(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	Offer(ctx context.Context, req dto.AvailabilityRequest, slotIDs []string) (model.Offer, error)
}

type serviceImpl struct {
	venueRepo    venueRepo.Venue
	scheduleRepo scheduleRepo.Schedule
	boxRepo      boxRepo.Box
	bookingRepo  bookingRepo.Booking
	rules        engine.Rules
	cfg          *config.Config
	cache        cache.RedisCache
	clock        timezone.Clock
	metrics      metrics.Metrics
	otel         otel.Otel
}

func New(
	venueRepo venueRepo.Venue,
	scheduleRepo scheduleRepo.Schedule,
	boxRepo boxRepo.Box,
	bookingRepo bookingRepo.Booking,
	rules engine.Rules,
	cfg *config.Config,
	cache cache.RedisCache,
	clock timezone.Clock,
	metrics metrics.Metrics,
	otel otel.Otel,
) Availability {
	return &serviceImpl{
		venueRepo:    venueRepo,
		scheduleRepo: scheduleRepo,
		boxRepo:      boxRepo,
		bookingRepo:  bookingRepo,
		rules:        rules,
		cfg:          cfg,
		cache:        cache,
		clock:        clock,
		metrics:      metrics,
		otel:         otel,
	}
}

// Get lists the bookable, priced slots of a venue day for the requested duration.
func (s *serviceImpl) Get(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	started := time.Now()
	outcome := metrics.OutcomeOK

	defer func() {
		if err != nil {
			outcome = metrics.OutcomeError
		}

		s.metrics.ObserveAvailability(outcome, time.Since(started), len(res.Times))
	}()

	duration, err := req.Validate()
	if err != nil {
		return res, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	venue, day, err := s.venueDay(ctx, req.Venue, req.Day)
	if err != nil {
		return res, err
	}

	// Today and earlier days shrink as slots start, so only later days are cached.
	cacheable := day.After(timezone.Today(s.clock, day.Location()))

	var cacheKey string

	if cacheable {
		var generation string

		generation, cacheable = shared.AvailabilityGeneration(ctx, s.cache, venue.ID)
		cacheKey = shared.BuildCacheKey(constant.CacheKeyAvailability, venue.ID, generation, day.Format(constant.DayFormat), strconv.Itoa(duration))
	}

	if cacheable {
		if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
			log.Info().Str("cacheKey", cacheKey).Msg("cache hit for availability")

			outcome = metrics.OutcomeCache

			return res, nil
		}
	}

	quotes, err := s.quotes(ctx, venue, day, duration)
	if err != nil {
		return res, err
	}

	from, to := model.DayWindow(day)

	occupancies, err := s.bookingRepo.GetOccupancies(ctx, venue.ID, from, to)
	if err != nil {
		log.Error().Err(err).Str("venue", venue.ID).Msg("failed to get occupancies")

		return res, fmt.Errorf("failed to get occupancies: %w", err)
	}

	res.FromQuotes(venue.ID, venue.Code, s.available(quotes, day, occupancies))

	if cacheable {
		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save availability to cache")
			}
		}()
	}

	return res, nil
}

// Offer quotes the candidate made of exactly slotIDs. Existing bookings are not consulted.
func (s *serviceImpl) Offer(ctx context.Context, req dto.AvailabilityRequest, slotIDs []string) (offer model.Offer, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.Offer")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	duration, err := req.Validate()
	if err != nil {
		return offer, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	venue, day, err := s.venueDay(ctx, req.Venue, req.Day)
	if err != nil {
		return offer, err
	}

	quotes, err := s.quotes(ctx, venue, day, duration)
	if err != nil {
		return offer, err
	}

	for _, quote := range quotes {
		candidate := model.Offer{Venue: venue, Day: day, Quote: quote}
		if !candidate.Matches(slotIDs) {
			continue
		}

		if candidate.StartAt().Before(s.clock.Now()) {
			return offer, failure.BadRequestFromString("slot has already started") // nolint:wrapcheck
		}

		return candidate, nil
	}

	return offer, failure.NotFound("slot is not offered for this day and duration") // nolint:wrapcheck
}

func (s *serviceImpl) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	seconds := s.cfg.Availability.QueryTimeoutSeconds
	if seconds <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, time.Duration(seconds)*time.Second)
}

// venueDay loads the venue by id or code and anchors day at midnight in the venue timezone.
func (s *serviceImpl) venueDay(ctx context.Context, key, value string) (venueModel.Venue, time.Time, error) {
	venue, err := s.venueRepo.GetByIDOrCode(ctx, key)
	if err != nil {
		log.Error().Err(err).Str("venue", key).Msg("failed to get venue")

		return venue, time.Time{}, fmt.Errorf("failed to get venue: %w", err)
	}

	if venue.ID == constant.Empty {
		return venue, time.Time{}, failure.UnknownVenue() // nolint:wrapcheck
	}

	day, err := timezone.DateIn(constant.DayFormat, value, timezone.LoadLocation(venue.Timezone))
	if err != nil {
		return venue, time.Time{}, failure.InvalidDate
	}

	return venue, day, nil
}

// quotes resolves the active schedule of the day and prices every candidate of duration.
func (s *serviceImpl) quotes(ctx context.Context, venue venueModel.Venue, day time.Time, duration int) ([]engine.Quote, error) {
	schedules, err := s.schedules(ctx, venue)
	if err != nil {
		return nil, err
	}

	schedule, err := engine.ResolveSchedule(venue, schedules, day)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	log.Debug().Str("venue", venue.ID).Str("schedule", schedule.ID).Time("day", day).Msg("resolved schedule")

	openTimes, err := s.scheduleRepo.GetOpenTimes(ctx, venue.ID, schedule.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get open times: %w", err)
	}

	boxes, err := s.boxRepo.GetByVenue(ctx, venue.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get boxes: %w", err)
	}

	slots, err := s.boxRepo.GetSlots(ctx, schedule.ID, boxIDs(boxes))
	if err != nil {
		return nil, fmt.Errorf("failed to get box slots: %w", err)
	}

	links, err := s.boxRepo.GetLinks(ctx, slotIDs(slots))
	if err != nil {
		return nil, fmt.Errorf("failed to get box slot links: %w", err)
	}

	candidates := engine.GenerateSlots(engine.SlotInput{
		ScheduleID: schedule.ID,
		Day:        day,
		Duration:   duration,
		Boxes:      boxes,
		Slots:      slots,
		Links:      links,
		OpenTimes:  openTimes,
	})

	if len(candidates) == 0 {
		return []engine.Quote{}, nil
	}

	prices, err := s.scheduleRepo.GetPrices(ctx, openTimeIDs(openTimes))
	if err != nil {
		return nil, fmt.Errorf("failed to get prices: %w", err)
	}

	pricer := engine.NewPricer(s.rules, prices)
	quotes := make([]engine.Quote, 0, len(candidates))

	for _, candidate := range candidates {
		quote, err := pricer.PriceFor(candidate, day)
		if err != nil {
			log.Error().Err(err).Str("slot", candidate.SlotID()).Str("start", candidate.Start.String()).Msg("failed to price slot")

			return nil, fmt.Errorf("failed to price slot %s at %s: %w", candidate.SlotID(), candidate.Start, err)
		}

		quotes = append(quotes, quote)
	}

	return quotes, nil
}

// schedules returns the venue's linked schedules plus its base schedule when it is not linked.
func (s *serviceImpl) schedules(ctx context.Context, venue venueModel.Venue) ([]scheduleModel.Schedule, error) {
	schedules, err := s.scheduleRepo.GetLinked(ctx, venue.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedules: %w", err)
	}

	if !venue.HasBaseSchedule() {
		return schedules, nil
	}

	for _, schedule := range schedules {
		if schedule.ID == *venue.ScheduleID {
			return schedules, nil
		}
	}

	base, err := s.scheduleRepo.GetByID(ctx, *venue.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get base schedule: %w", err)
	}

	if base.ID != constant.Empty {
		schedules = append(schedules, base)
	}

	return schedules, nil
}

// available drops quotes that already started or collide with bookings.
func (s *serviceImpl) available(quotes []engine.Quote, day time.Time, occupancies []bookingModel.Occupancy) []engine.Quote {
	now := s.clock.Now()
	result := make([]engine.Quote, 0, len(quotes))

	for _, quote := range quotes {
		offer := model.Offer{Day: day, Quote: quote}
		start, end := offer.StartAt(), offer.EndAt()

		if start.Before(now) {
			continue
		}

		if !s.rules.Clear(quote.Parts, start, end, occupancies) {
			continue
		}

		result = append(result, quote)
	}

	return result
}

func boxIDs(boxes []boxModel.Box) []string {
	ids := make([]string, len(boxes))
	for i, box := range boxes {
		ids[i] = box.ID
	}

	return ids
}

func slotIDs(slots []boxModel.Slot) []string {
	ids := make([]string, len(slots))
	for i, slot := range slots {
		ids[i] = slot.ID
	}

	return ids
}

func openTimeIDs(openTimes []scheduleModel.OpenTime) []string {
	ids := make([]string, len(openTimes))
	for i, openTime := range openTimes {
		ids[i] = openTime.ID
	}

	return ids
}

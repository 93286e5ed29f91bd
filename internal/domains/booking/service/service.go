package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venuebook/config"
	"venuebook/infras/kafka"
	"venuebook/infras/metrics"
	"venuebook/infras/otel"
	"venuebook/internal/domains/availability/engine"
	availabilityModel "venuebook/internal/domains/availability/model"
	availabilityService "venuebook/internal/domains/availability/service"
	"venuebook/internal/domains/booking/model"
	"venuebook/internal/domains/booking/model/dto"
	"venuebook/internal/domains/booking/repository"
	"venuebook/shared"
	"venuebook/shared/cache"
	"venuebook/shared/constant"
	gDto "venuebook/shared/dto"
	"venuebook/shared/failure"
	gRepo "venuebook/shared/repository"
	"venuebook/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	maxAttempts = 2
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) error
	ExpireStale(ctx context.Context) (int, error)
}

type serviceImpl struct {
	repo         repository.Booking
	availability availabilityService.Availability
	rules        engine.Rules
	cfg          *config.Config
	cache        cache.RedisCache
	kafka        kafka.Client
	clock        timezone.Clock
	metrics      metrics.Metrics
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	availability availabilityService.Availability,
	rules engine.Rules,
	cfg *config.Config,
	cache cache.RedisCache,
	kafka kafka.Client,
	clock timezone.Clock,
	metrics metrics.Metrics,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		availability: availability,
		rules:        rules,
		cfg:          cfg,
		cache:        cache,
		kafka:        kafka,
		clock:        clock,
		metrics:      metrics,
		otel:         otel,
	}
}

// Create quotes the requested slot and inserts it in a serializable transaction,
// retrying once on a serialization failure.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	defer func() {
		outcome := metrics.OutcomeOK
		if err != nil {
			outcome = metrics.OutcomeError
		}

		s.metrics.ObserveBooking(outcome)
	}()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	offer, err := s.availability.Offer(ctx, req.AvailabilityRequest(), req.BoxSlotIDs)
	if err != nil {
		log.Error().Err(err).Str("venue", req.Venue).Msg("failed to quote booking")

		return res, err //nolint:wrapcheck
	}

	booking := req.ToModel(offer, user, s.clock.Now())
	boxIDs := offer.Quote.BoxIDs()

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = s.repo.WithSerializableTx(ctx, func(tx *sqlx.Tx) error {
			return s.insert(ctx, tx, offer, booking, boxIDs)
		})

		if !retryable(err) {
			break
		}

		log.Warn().Err(err).Int("attempt", attempt).Str("booking", booking.ID).Msg("serialization failure while booking")
		s.metrics.IncBookingConflict(attempt < maxAttempts)
	}

	if retryable(err) {
		return res, failure.BookingConflict() //nolint:wrapcheck
	}

	if err != nil {
		var fail *failure.Failure
		if errors.As(err, &fail) {
			return res, fail
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	res.FromModel(booking)
	res.BoxIDs = boxIDs

	s.publishCreated(ctx, res)
	shared.RotateAvailability(ctx, s.cache, s.cfg.Cache.TTL, booking.VenueID)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache,
			shared.BuildCacheKey(constant.CacheKeyAvailability, booking.VenueID),
			cacheGetAllBooking,
			cacheCountBooking,
		)
	}()

	return res, nil
}

// insert re-reads the day's bookings inside the transaction and rejects the booking when it would
// collide with, or crowd, an existing one.
func (s *serviceImpl) insert(ctx context.Context, tx *sqlx.Tx, offer availabilityModel.Offer, booking model.Booking, boxIDs []string) error {
	from, to := offer.DayWindow()

	occupancies, err := s.repo.GetOccupanciesTx(ctx, tx, booking.VenueID, from, to)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if !s.rules.Clear(offer.Quote.Parts, booking.StartAt, booking.EndAt, occupancies) {
		return failure.BookingConflict() //nolint:wrapcheck
	}

	// Following bookings are re-checked against the section load counted by the database.
	for _, part := range offer.Quote.Parts {
		count, err := s.repo.CountSectionBoundaryTx(ctx, tx, booking.VenueID, part.Box.Section, booking.EndAt)
		if err != nil {
			return err //nolint:wrapcheck
		}

		overtime := s.rules.SectionOvertime(count)

		for _, occupancy := range occupancies {
			if occupancy.BoxID != part.Box.ID || occupancy.StartAt.Before(booking.EndAt) {
				continue
			}

			if !s.rules.EnoughTimeBefore(occupancy.StartAt, booking.StartAt, booking.Duration(), overtime) {
				return failure.BookingConflict() //nolint:wrapcheck
			}
		}
	}

	return s.repo.CreateTx(ctx, tx, booking, boxIDs) //nolint:wrapcheck
}

func (s *serviceImpl) publishCreated(ctx context.Context, booking dto.BookingResponse) {
	topic := s.cfg.Booking.EventTopic
	if topic == "" {
		return
	}

	event := dto.NewCreatedEvent(s.cfg.Booking.EventBusName, booking)

	if err := s.kafka.SendMessages(ctx, topic, kafka.Message{Key: booking.VenueID, Value: event}); err != nil {
		log.Error().Err(err).Str("booking", booking.ID).Msg("failed to publish booking created event")
	}
}

func retryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	return pqErr.Code == constant.PqErrorCodeSerializationFailure || pqErr.Code == constant.PqErrorCodeDeadlockDetected
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty || booking.DeletedAt != nil {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	boxIDs, err := s.repo.GetBoxIDs(ctx, booking.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking boxes")

		return res, fmt.Errorf("failed to get booking boxes: %w", err)
	}

	res.FromModel(booking)
	res.BoxIDs = boxIDs

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// UpdateStatus moves a pending booking to Paid or Cancelled. Cancelling frees its boxes.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter, model.FieldID, model.FieldVenueID, model.FieldStatus, model.FieldDeletedAt)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty || booking.DeletedAt != nil {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if !model.CanTransition(booking.Status, req.Status) {
		return failure.Conflict(fmt.Sprintf("booking cannot move from %s to %s", booking.Status, req.Status)) // nolint:wrapcheck
	}

	pending := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			filter,
			gDto.Filter{Field: model.FieldStatus, ArgName: "current_status", Operator: gDto.FilterOperatorEq, Value: model.StatusPaymentInProgress, Table: model.TableName},
			gDto.Filter{Field: model.FieldDeletedAt, Operator: gDto.FilterIsNull, Table: model.TableName},
		},
	}

	err = s.repo.Update(ctx, shared.TransformFields(req, user, s.clock.Now()), pending)
	if errors.Is(err, gRepo.ErrNotAffected) {
		return failure.Conflict("booking is no longer awaiting payment") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if req.Status == model.StatusCancelled {
		shared.RotateAvailability(ctx, s.cache, s.cfg.Cache.TTL, booking.VenueID)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking, cacheCountBooking)

		if req.Status == model.StatusCancelled {
			shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(constant.CacheKeyAvailability, booking.VenueID))
		}
	}()

	return nil
}

// ExpireStale soft-deletes bookings still awaiting payment after the payment timeout.
func (s *serviceImpl) ExpireStale(ctx context.Context) (count int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ExpireStale")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := s.clock.Now()
	timeout := time.Duration(s.cfg.Booking.PaymentTimeoutMinutes) * time.Minute

	if timeout <= 0 {
		return 0, nil
	}

	expired, err := s.repo.ExpireStale(ctx, now.Add(-timeout), now)
	if err != nil {
		log.Error().Err(err).Msg("failed to expire stale bookings")

		return 0, fmt.Errorf("failed to expire stale bookings: %w", err)
	}

	if len(expired) == 0 {
		return 0, nil
	}

	s.metrics.AddExpired(int64(len(expired)))

	prefixes := []string{cacheGetAllBooking, cacheCountBooking}
	seen := map[string]bool{}
	venues := make([]string, 0, len(expired))

	for _, booking := range expired {
		log.Info().Str("booking", booking.ID).Str("venue", booking.VenueID).Time("start_at", booking.StartAt).Msg("expired unpaid booking")

		if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetBooking, booking.ID)); err != nil {
			log.Error().Err(err).Str("booking", booking.ID).Msg("failed to delete expired booking from cache")
		}

		if !seen[booking.VenueID] {
			seen[booking.VenueID] = true
			venues = append(venues, booking.VenueID)
			prefixes = append(prefixes, shared.BuildCacheKey(constant.CacheKeyAvailability, booking.VenueID))
		}
	}

	shared.RotateAvailability(ctx, s.cache, s.cfg.Cache.TTL, venues...)

	shared.InvalidateCaches(ctx, s.cache, prefixes...)

	return len(expired), nil
}

package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"venuebook/config"
	"venuebook/infras/kafka"
	kafkaMocks "venuebook/infras/kafka/mocks"
	"venuebook/infras/metrics"
	otelMocks "venuebook/infras/otel/mocks"
	"venuebook/internal/domains/availability/engine"
	availabilityModel "venuebook/internal/domains/availability/model"
	availabilityMocks "venuebook/internal/domains/availability/service/mocks"
	bookingMocks "venuebook/internal/domains/booking/mocks"
	"venuebook/internal/domains/booking/model"
	"venuebook/internal/domains/booking/model/dto"
	"venuebook/internal/domains/booking/service"
	boxModel "venuebook/internal/domains/box/model"
	venueModel "venuebook/internal/domains/venue/model"
	cacheMocks "venuebook/shared/cache/mocks"
	"venuebook/shared/constant"
	"venuebook/shared/failure"
	gRepo "venuebook/shared/repository"
	"venuebook/shared/timezone"
	"venuebook/shared/walltime"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	monday = time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)
	now    = time.Date(2021, 1, 1, 9, 0, 0, 0, time.UTC)
)

type fixture struct {
	repo         *bookingMocks.MockBooking
	availability *availabilityMocks.MockAvailability
	cache        *cacheMocks.MockRedisCache
	kafka        *kafkaMocks.MockClient
	svc          service.Booking
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.EventTopic = "booking-events"
	cfg.Booking.EventBusName = "venuebook"
	cfg.Booking.PaymentTimeoutMinutes = 15

	f := &fixture{
		repo:         bookingMocks.NewMockBooking(ctrl),
		availability: availabilityMocks.NewMockAvailability(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
		kafka:        kafkaMocks.NewMockClient(ctrl),
	}

	f.svc = service.New(
		f.repo,
		f.availability,
		engine.DefaultRules(),
		cfg,
		f.cache,
		f.kafka,
		timezone.FixedClock(now),
		metrics.NewNop(),
		otelMocks.NewOtel(),
	)

	return f
}

// peakOffer is slot-4 of box-1, Monday 16:40 for 60 minutes at 2001.
func peakOffer() availabilityModel.Offer {
	start := walltime.MustParse("16:40:00")

	return availabilityModel.Offer{
		Venue: venueModel.Venue{ID: "venue-1", Code: "V1", Timezone: "UTC"},
		Day:   monday,
		Quote: engine.Quote{
			Candidate: engine.Candidate{
				Start:    start,
				Duration: 60,
				Parts: []engine.Part{{
					Slot: boxModel.Slot{ID: "slot-4", BoxID: "box-1", StartTime: start, Duration: 60},
					Box:  boxModel.Box{ID: "box-1", VenueID: "venue-1", Section: "A"},
				}},
			},
			Tier:  "peak",
			Price: 2001,
		},
	}
}

func createRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{Venue: "V1", Day: "2021-01-04", Duration: 60, BoxSlotIDs: []string{"slot-4"}}
}

func at(clock string) time.Time {
	return walltime.MustParse(clock).On(monday)
}

func runTx(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

func TestBookingService_Create(t *testing.T) {
	f := newFixture(t)
	req := createRequest()

	var created model.Booking

	f.availability.EXPECT().Offer(gomock.Any(), req.AvailabilityRequest(), []string{"slot-4"}).Return(peakOffer(), nil)
	f.repo.EXPECT().WithSerializableTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
	f.repo.EXPECT().GetOccupanciesTx(gomock.Any(), gomock.Any(), "venue-1", monday, monday.AddDate(0, 0, 1)).Return([]model.Occupancy{}, nil)
	f.repo.EXPECT().CountSectionBoundaryTx(gomock.Any(), gomock.Any(), "venue-1", "A", at("17:40:00")).Return(0, nil)
	f.repo.EXPECT().CreateTx(gomock.Any(), gomock.Any(), gomock.Any(), []string{"box-1"}).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking, _ []string) error {
			created = booking

			return nil
		})
	f.kafka.EXPECT().SendMessages(gomock.Any(), "booking-events", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			require.Len(t, messages, 1)
			assert.Equal(t, "venue-1", messages[0].Key)

			event, ok := messages[0].Value.(dto.Event)
			require.True(t, ok)
			assert.Equal(t, "venuebook", event.EventBusName)
			assert.Equal(t, dto.EventDetailTypeCreate, event.DetailType)
			assert.Equal(t, dto.EventSource, event.Source)
			assert.Equal(t, created.ID, event.Detail.ID)

			return nil
		})
	f.cache.EXPECT().Save(gomock.Any(), "availability_generation:venue-1", gomock.Any(), 7200).
		DoAndReturn(func(_ context.Context, _ string, value any, _ int) error {
			assert.NotEmpty(t, value)

			return nil
		})
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
	res, err := f.svc.Create(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, created.ID, res.ID)
	assert.Equal(t, at("16:40:00"), created.StartAt)
	assert.Equal(t, at("17:40:00"), created.EndAt)
	assert.Equal(t, int64(2001), created.Price)
	assert.Equal(t, model.StatusPaymentInProgress, created.Status)
	assert.Equal(t, model.TypeSingle, created.Type)
	assert.Equal(t, dto.SourceWeb, created.Source)
	assert.Equal(t, "user-1", created.CreatedBy)
	assert.Equal(t, []string{"box-1"}, res.BoxIDs)
	assert.Equal(t, 60, res.Duration)
}

func TestBookingService_CreateConflicts(t *testing.T) {
	serialization := &pq.Error{Code: constant.PqErrorCodeSerializationFailure}

	tests := []struct {
		name       string
		setupMock  func(f *fixture)
		wantCode   int
		wantReason string
	}{
		{
			name: "slot not offered",
			setupMock: func(f *fixture) {
				f.availability.EXPECT().Offer(gomock.Any(), gomock.Any(), gomock.Any()).Return(availabilityModel.Offer{}, failure.NotFound("slot is not offered"))
			},
			wantCode: 404,
		},
		{
			name: "overlapping booking on the same box",
			setupMock: func(f *fixture) {
				f.availability.EXPECT().Offer(gomock.Any(), gomock.Any(), gomock.Any()).Return(peakOffer(), nil)
				f.repo.EXPECT().WithSerializableTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				f.repo.EXPECT().GetOccupanciesTx(gomock.Any(), gomock.Any(), "venue-1", gomock.Any(), gomock.Any()).Return([]model.Occupancy{
					{BookingID: "other", BoxID: "box-1", Section: "A", StartAt: at("16:00:00"), EndAt: at("17:00:00")},
				}, nil)
			},
			wantCode:   409,
			wantReason: failure.ReasonBookingConflict,
		},
		{
			name: "busy section leaves no room before the next booking",
			setupMock: func(f *fixture) {
				f.availability.EXPECT().Offer(gomock.Any(), gomock.Any(), gomock.Any()).Return(peakOffer(), nil)
				f.repo.EXPECT().WithSerializableTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				f.repo.EXPECT().GetOccupanciesTx(gomock.Any(), gomock.Any(), "venue-1", gomock.Any(), gomock.Any()).Return([]model.Occupancy{
					{BookingID: "next", BoxID: "box-1", Section: "A", StartAt: at("17:50:00"), EndAt: at("18:50:00")},
				}, nil)
				f.repo.EXPECT().CountSectionBoundaryTx(gomock.Any(), gomock.Any(), "venue-1", "A", at("17:40:00")).Return(3, nil)
			},
			wantCode:   409,
			wantReason: failure.ReasonBookingConflict,
		},
		{
			name: "serialization failure twice",
			setupMock: func(f *fixture) {
				f.availability.EXPECT().Offer(gomock.Any(), gomock.Any(), gomock.Any()).Return(peakOffer(), nil)
				f.repo.EXPECT().WithSerializableTx(gomock.Any(), gomock.Any()).Return(serialization).Times(2)
			},
			wantCode:   409,
			wantReason: failure.ReasonBookingConflict,
		},
		{
			name: "database failure",
			setupMock: func(f *fixture) {
				f.availability.EXPECT().Offer(gomock.Any(), gomock.Any(), gomock.Any()).Return(peakOffer(), nil)
				f.repo.EXPECT().WithSerializableTx(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			_, err := f.svc.Create(context.Background(), createRequest())

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
			assert.Equal(t, tt.wantReason, failure.GetReason(err))
		})
	}
}

func TestBookingService_CreateRetriesOnce(t *testing.T) {
	f := newFixture(t)

	gomock.InOrder(
		f.repo.EXPECT().WithSerializableTx(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeDeadlockDetected}),
		f.repo.EXPECT().WithSerializableTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx),
	)

	f.availability.EXPECT().Offer(gomock.Any(), gomock.Any(), gomock.Any()).Return(peakOffer(), nil)
	f.repo.EXPECT().GetOccupanciesTx(gomock.Any(), gomock.Any(), "venue-1", gomock.Any(), gomock.Any()).Return([]model.Occupancy{}, nil)
	f.repo.EXPECT().CountSectionBoundaryTx(gomock.Any(), gomock.Any(), "venue-1", "A", gomock.Any()).Return(0, nil)
	f.repo.EXPECT().CreateTx(gomock.Any(), gomock.Any(), gomock.Any(), []string{"box-1"}).Return(nil)
	f.kafka.EXPECT().SendMessages(gomock.Any(), "booking-events", gomock.Any()).Return(errors.New("broker down"))
	f.cache.EXPECT().Save(gomock.Any(), "availability_generation:venue-1", gomock.Any(), 7200).Return(errors.New("connection refused"))
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := f.svc.Create(context.Background(), createRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
}

func TestBookingService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name      string
		current   model.Booking
		status    string
		updateErr error
		wantErr   bool
		wantCode  int
	}{
		{
			name:    "pending to paid",
			current: model.Booking{ID: "b-1", VenueID: "venue-1", Status: model.StatusPaymentInProgress},
			status:  model.StatusPaid,
		},
		{
			name:    "pending to cancelled",
			current: model.Booking{ID: "b-1", VenueID: "venue-1", Status: model.StatusPaymentInProgress},
			status:  model.StatusCancelled,
		},
		{
			name:     "paid is terminal",
			current:  model.Booking{ID: "b-1", VenueID: "venue-1", Status: model.StatusPaid},
			status:   model.StatusCancelled,
			wantErr:  true,
			wantCode: 409,
		},
		{
			name:      "expired while updating",
			current:   model.Booking{ID: "b-1", VenueID: "venue-1", Status: model.StatusPaymentInProgress},
			status:    model.StatusPaid,
			updateErr: gRepo.ErrNotAffected,
			wantErr:   true,
			wantCode:  409,
		},
		{
			name:     "missing booking",
			current:  model.Booking{},
			status:   model.StatusPaid,
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.current, nil)

			if tt.updateErr != nil {
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.updateErr)
			}

			if !tt.wantErr {
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, tt.status, fields[model.FieldStatus])

						return nil
					})
				f.cache.EXPECT().Delete(gomock.Any(), "booking:get:b-1").Return(nil).AnyTimes()
				f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

				if tt.status == model.StatusCancelled {
					f.cache.EXPECT().Save(gomock.Any(), "availability_generation:venue-1", gomock.Any(), 7200).Return(nil)
				}
			}

			err := f.svc.UpdateStatus(context.Background(), dto.UpdateStatusRequest{Status: tt.status}, "b-1")

			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "booking:get:b-1", gomock.Any()).Return(errors.New("redis: nil"))
	f.cache.EXPECT().Save(gomock.Any(), "booking:get:b-1", gomock.Any(), 3600).Return(nil).AnyTimes()
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{
		ID:      "b-1",
		VenueID: "venue-1",
		StartAt: at("16:40:00"),
		EndAt:   at("17:40:00"),
		Status:  model.StatusPaid,
	}, nil)
	f.repo.EXPECT().GetBoxIDs(gomock.Any(), "b-1").Return([]string{"box-1", "box-2"}, nil)

	res, err := f.svc.Get(context.Background(), "b-1")

	require.NoError(t, err)
	assert.Equal(t, "b-1", res.ID)
	assert.Equal(t, 60, res.Duration)
	assert.Equal(t, []string{"box-1", "box-2"}, res.BoxIDs)
	assert.Equal(t, "2021-01-04T16:40:00Z", res.StartAt)
}

func TestBookingService_GetExpired(t *testing.T) {
	f := newFixture(t)
	expiredAt := now.Add(-time.Minute)

	f.cache.EXPECT().Get(gomock.Any(), "booking:get:b-1", gomock.Any()).Return(errors.New("redis: nil"))
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{
		ID:        "b-1",
		VenueID:   "venue-1",
		StartAt:   at("16:40:00"),
		EndAt:     at("17:40:00"),
		Status:    model.StatusPaymentInProgress,
		DeletedAt: &expiredAt,
	}, nil)

	res, err := f.svc.Get(context.Background(), "b-1")

	require.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
	assert.Empty(t, res.ID)
}

func TestBookingService_ExpireStale(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().ExpireStale(gomock.Any(), now.Add(-15*time.Minute), now).Return([]model.Booking{
		{ID: "b-1", VenueID: "venue-1", StartAt: at("16:40:00")},
		{ID: "b-2", VenueID: "venue-1", StartAt: at("18:00:00")},
	}, nil)
	f.cache.EXPECT().Delete(gomock.Any(), "booking:get:b-1").Return(nil)
	f.cache.EXPECT().Delete(gomock.Any(), "booking:get:b-2").Return(errors.New("connection refused"))
	f.cache.EXPECT().Save(gomock.Any(), "availability_generation:venue-1", gomock.Any(), 7200).Return(nil)
	f.cache.EXPECT().Clear(gomock.Any(), "booking:gets:*").Return(nil)
	f.cache.EXPECT().Clear(gomock.Any(), "booking:count:*").Return(nil)
	f.cache.EXPECT().Clear(gomock.Any(), "availability:venue-1:*").Return(nil)

	count, err := f.svc.ExpireStale(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestBookingService_ExpireStaleNothingToDo(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().ExpireStale(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{}, nil)

	count, err := f.svc.ExpireStale(context.Background())

	require.NoError(t, err)
	assert.Zero(t, count)
}

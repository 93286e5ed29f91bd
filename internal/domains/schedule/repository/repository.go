package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"venuebook/infras/otel"
	"venuebook/infras/postgres"
	"venuebook/internal/domains/schedule/model"
	"venuebook/shared"
	"venuebook/shared/constant"
	gDto "venuebook/shared/dto"
	gRepo "venuebook/shared/repository"
)

type Schedule interface {
	Insert(ctx context.Context, model model.Schedule) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Schedule, error)
	GetByID(ctx context.Context, id string) (model.Schedule, error)
	GetLinked(ctx context.Context, venueID string) ([]model.Schedule, error)
	LinkVenue(ctx context.Context, link model.VenueSchedule) error
	GetOpenTimes(ctx context.Context, venueID, scheduleID string) ([]model.OpenTime, error)
	InsertOpenTime(ctx context.Context, openTime model.OpenTime) error
	GetPrices(ctx context.Context, openTimeIDs []string) ([]model.Price, error)
	InsertPrice(ctx context.Context, price model.Price) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Schedule]
	linked    gRepo.Repository[model.LinkedSchedule]
	links     gRepo.Repository[model.VenueSchedule]
	openTimes gRepo.Repository[model.OpenTime]
	prices    gRepo.Repository[model.Price]
	db        *postgres.Connection
	otel      otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Schedule {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Schedule](model.EntityName, model.TableName, model.FieldID, db, otel),
		linked:     gRepo.NewRepository[model.LinkedSchedule](model.EntityName, model.TableName, model.FieldID, db, otel),
		links:      gRepo.NewRepository[model.VenueSchedule](model.VenueScheduleEntityName, model.VenueScheduleTableName, model.FieldID, db, otel),
		openTimes:  gRepo.NewRepository[model.OpenTime](model.OpenTimeEntityName, model.OpenTimeTableName, model.FieldID, db, otel),
		prices:     gRepo.NewRepository[model.Price](model.PriceEntityName, model.PriceTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) GetByID(ctx context.Context, id string) (model.Schedule, error) {
	return r.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
}

// GetLinked returns the schedules attached to the venue through venue_schedules.
func (r *repositoryImpl) GetLinked(ctx context.Context, venueID string) ([]model.Schedule, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".schedule.GetLinked")
	defer scope.End()

	rows, err := r.linked.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(venueID, model.FieldVenueID, model.VenueScheduleTableName))
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get linked schedules: %w", err)
	}

	schedules := make([]model.Schedule, len(rows))
	for i, row := range rows {
		schedules[i] = row.Schedule
	}

	return schedules, nil
}

func (r *repositoryImpl) LinkVenue(ctx context.Context, link model.VenueSchedule) error {
	return r.links.Insert(ctx, link) //nolint:wrapcheck
}

// GetOpenTimes returns the open times of the schedule plus the venue's legacy weekday rows.
func (r *repositoryImpl) GetOpenTimes(ctx context.Context, venueID, scheduleID string) ([]model.OpenTime, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{Field: model.FieldScheduleID, Value: scheduleID, Operator: gDto.FilterOperatorEq, Table: model.OpenTimeTableName},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorAnd,
				Filters: []any{
					gDto.Filter{Field: model.FieldVenueID, Value: venueID, Operator: gDto.FilterOperatorEq, Table: model.OpenTimeTableName},
					gDto.Filter{Field: model.FieldScheduleID, Operator: gDto.FilterIsNull, Table: model.OpenTimeTableName},
				},
			},
		},
	}

	openTimes, err := r.openTimes.GetAll(ctx, gDto.QueryParams{SortBy: "start_time", SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get open times: %w", err)
	}

	return openTimes, nil
}

func (r *repositoryImpl) InsertOpenTime(ctx context.Context, openTime model.OpenTime) error {
	return r.openTimes.Insert(ctx, openTime) //nolint:wrapcheck
}

func (r *repositoryImpl) GetPrices(ctx context.Context, openTimeIDs []string) ([]model.Price, error) {
	if len(openTimeIDs) == 0 {
		return []model.Price{}, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldOpenTimeID, Value: openTimeIDs, Operator: gDto.FilterOperatorIn, Table: model.PriceTableName},
		},
	}

	prices, err := r.prices.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get prices: %w", err)
	}

	return prices, nil
}

func (r *repositoryImpl) InsertPrice(ctx context.Context, price model.Price) error {
	return r.prices.Insert(ctx, price) //nolint:wrapcheck
}

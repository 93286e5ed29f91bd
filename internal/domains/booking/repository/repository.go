package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"venuebook/infras/otel"
	"venuebook/infras/postgres"
	"venuebook/internal/domains/booking/model"
	boxModel "venuebook/internal/domains/box/model"
	"venuebook/shared/constant"
	gDto "venuebook/shared/dto"
	"venuebook/shared/logger"
	gRepo "venuebook/shared/repository"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const expiredBy = "sweeper"

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	GetBoxIDs(ctx context.Context, bookingID string) ([]string, error)
	WithSerializableTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	GetOccupancies(ctx context.Context, venueID string, from, to time.Time) ([]model.Occupancy, error)
	GetOccupanciesTx(ctx context.Context, tx *sqlx.Tx, venueID string, from, to time.Time) ([]model.Occupancy, error)
	CountSectionBoundaryTx(ctx context.Context, tx *sqlx.Tx, venueID, section string, boundary time.Time) (int, error)
	CreateTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking, boxIDs []string) error
	ExpireStale(ctx context.Context, createdBefore, now time.Time) ([]model.Booking, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	boxBookings gRepo.Repository[model.BoxBooking]
	builder     squirrel.StatementBuilderType
	db          *postgres.Connection
	otel        otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository:  gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		boxBookings: gRepo.NewRepository[model.BoxBooking](model.BoxBookingEntityName, model.BoxBookingTableName, model.FieldID, db, otel),
		builder:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		db:          db,
		otel:        otel,
	}
}

func (r *repositoryImpl) GetBoxIDs(ctx context.Context, bookingID string) ([]string, error) {
	rows, err := r.boxBookings.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingID, Value: bookingID, Operator: gDto.FilterOperatorEq, Table: model.BoxBookingTableName},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get booking boxes: %w", err)
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.BoxID
	}

	return ids, nil
}

// WithSerializableTx runs fn in a SERIALIZABLE transaction on the write connection.
func (r *repositoryImpl) WithSerializableTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return r.db.WithTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn) //nolint:wrapcheck
}

// active restricts a query to bookings that still hold their boxes.
func active(query squirrel.SelectBuilder, venueID string) squirrel.SelectBuilder {
	return query.
		From(model.TableName).
		Join("box_bookings ON box_bookings.booking_id = bookings.id").
		Join("boxes ON boxes.id = box_bookings.box_id").
		Where(squirrel.Eq{"bookings.venue_id": venueID}).
		Where(squirrel.Eq{"bookings.deleted_at": nil}).
		Where(squirrel.NotEq{"bookings.status": model.StatusCancelled})
}

func (r *repositoryImpl) GetOccupancies(ctx context.Context, venueID string, from, to time.Time) ([]model.Occupancy, error) {
	return r.getOccupancies(ctx, r.db.Read, venueID, from, to)
}

func (r *repositoryImpl) GetOccupanciesTx(ctx context.Context, tx *sqlx.Tx, venueID string, from, to time.Time) ([]model.Occupancy, error) {
	return r.getOccupancies(ctx, tx, venueID, from, to)
}

// getOccupancies lists the boxes held by active bookings overlapping [from, to).
func (r *repositoryImpl) getOccupancies(ctx context.Context, queryer sqlx.QueryerContext, venueID string, from, to time.Time) ([]model.Occupancy, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.getOccupancies")
	defer scope.End()

	query, args, err := active(r.builder.Select(
		"bookings.id AS booking_id",
		"box_bookings.box_id",
		"boxes.section",
		"bookings.start_at",
		"bookings.end_at",
	), venueID).
		Where(squirrel.Lt{"bookings.start_at": to}).
		Where(squirrel.Gt{"bookings.end_at": from}).
		OrderBy("bookings.start_at", "box_bookings.box_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build occupancy query: %w", err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	occupancies := []model.Occupancy{}

	if err = sqlx.SelectContext(ctx, queryer, &occupancies, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get occupancies: %w", err)
	}

	return occupancies, nil
}

// CountSectionBoundaryTx counts active bookings of the section starting or ending exactly at boundary.
func (r *repositoryImpl) CountSectionBoundaryTx(ctx context.Context, tx *sqlx.Tx, venueID, section string, boundary time.Time) (int, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CountSectionBoundaryTx")
	defer scope.End()

	query, args, err := active(r.builder.Select("COUNT(DISTINCT bookings.id)"), venueID).
		Where(squirrel.Eq{"boxes." + boxModel.FieldSection: section}).
		Where(squirrel.Or{
			squirrel.Eq{"bookings.start_at": boundary},
			squirrel.Eq{"bookings.end_at": boundary},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build section count query: %w", err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	if err = sqlx.GetContext(ctx, tx, &count, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count section bookings: %w", err)
	}

	return count, nil
}

// CreateTx inserts the booking and one box_bookings row per box.
func (r *repositoryImpl) CreateTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking, boxIDs []string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CreateTx")
	defer scope.End()

	if err := r.InsertTx(ctx, tx, booking); err != nil {
		scope.TraceError(err)

		return err //nolint:wrapcheck
	}

	rows := make([]model.BoxBooking, len(boxIDs))
	for i, boxID := range boxIDs {
		rows[i] = model.BoxBooking{
			ID:        uuid.NewString(),
			BookingID: booking.ID,
			BoxID:     boxID,
		}
	}

	if err := r.boxBookings.InsertBulkTx(ctx, tx, rows); err != nil {
		scope.TraceError(err)

		return err //nolint:wrapcheck
	}

	return nil
}

// ExpireStale soft-deletes unpaid bookings created before createdBefore and returns what it released.
func (r *repositoryImpl) ExpireStale(ctx context.Context, createdBefore, now time.Time) ([]model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ExpireStale")
	defer scope.End()

	query, args, err := r.builder.Update(model.TableName).
		Set(model.FieldDeletedAt, now).
		Set(constant.FieldModifiedAt, now).
		Set(constant.FieldModifiedBy, expiredBy).
		Where(squirrel.Eq{model.FieldStatus: model.StatusPaymentInProgress}).
		Where(squirrel.Eq{model.FieldDeletedAt: nil}).
		Where(squirrel.Lt{model.FieldCreatedAt: createdBefore}).
		Suffix("RETURNING id, venue_id, start_at, end_at, status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build expiry query: %w", err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	expired := []model.Booking{}

	if err = sqlx.SelectContext(ctx, r.db.Write, &expired, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to expire stale bookings: %w", err)
	}

	return expired, nil
}

package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"venuebook/infras/otel"
	"venuebook/infras/postgres"
	"venuebook/internal/domains/box/model"
	"venuebook/shared"
	gDto "venuebook/shared/dto"
	gRepo "venuebook/shared/repository"
)

type Box interface {
	Insert(ctx context.Context, model model.Box) error
	GetByVenue(ctx context.Context, venueID string) ([]model.Box, error)
	GetSlots(ctx context.Context, scheduleID string, boxIDs []string) ([]model.Slot, error)
	InsertSlot(ctx context.Context, slot model.Slot) error
	GetLinks(ctx context.Context, slotIDs []string) ([]model.Link, error)
	InsertLink(ctx context.Context, link model.Link) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Box]
	slots gRepo.Repository[model.Slot]
	links gRepo.Repository[model.Link]
	db    *postgres.Connection
	otel  otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Box {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Box](model.EntityName, model.TableName, model.FieldID, db, otel),
		slots:      gRepo.NewRepository[model.Slot](model.SlotEntityName, model.SlotTableName, model.FieldID, db, otel),
		links:      gRepo.NewRepository[model.Link](model.LinkEntityName, model.LinkTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) GetByVenue(ctx context.Context, venueID string) ([]model.Box, error) {
	boxes, err := r.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldID, SortDir: gDto.SortDirAsc}, shared.FilterByID(venueID, model.FieldVenueID, model.TableName))
	if err != nil {
		return nil, fmt.Errorf("failed to get boxes: %w", err)
	}

	return boxes, nil
}

func (r *repositoryImpl) GetSlots(ctx context.Context, scheduleID string, boxIDs []string) ([]model.Slot, error) {
	if len(boxIDs) == 0 {
		return []model.Slot{}, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldScheduleID, Value: scheduleID, Operator: gDto.FilterOperatorEq, Table: model.SlotTableName},
			gDto.Filter{Field: model.FieldBoxID, Value: boxIDs, Operator: gDto.FilterOperatorIn, Table: model.SlotTableName},
		},
	}

	slots, err := r.slots.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get box slots: %w", err)
	}

	return slots, nil
}

func (r *repositoryImpl) InsertSlot(ctx context.Context, slot model.Slot) error {
	return r.slots.Insert(ctx, slot) //nolint:wrapcheck
}

// GetLinks returns every link touching one of the slots, from either side.
func (r *repositoryImpl) GetLinks(ctx context.Context, slotIDs []string) ([]model.Link, error) {
	if len(slotIDs) == 0 {
		return []model.Link{}, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{Field: model.FieldSlotID, Value: slotIDs, Operator: gDto.FilterOperatorIn, Table: model.LinkTableName},
			gDto.Filter{Field: model.FieldLinkedSlotID, Value: slotIDs, Operator: gDto.FilterOperatorIn, Table: model.LinkTableName},
		},
	}

	links, err := r.links.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get box slot links: %w", err)
	}

	return links, nil
}

func (r *repositoryImpl) InsertLink(ctx context.Context, link model.Link) error {
	return r.links.Insert(ctx, link) //nolint:wrapcheck
}

package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"venuebook/infras/otel"
	"venuebook/infras/postgres"
	"venuebook/internal/domains/venue/model"
	gDto "venuebook/shared/dto"
	gRepo "venuebook/shared/repository"
)

type Venue interface {
	Insert(ctx context.Context, model model.Venue) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Venue, error)
	GetByIDOrCode(ctx context.Context, key string) (model.Venue, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Venue]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Venue {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Venue](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetByIDOrCode accepts either the venue id or its public code. A zero Venue means no match.
func (r *repositoryImpl) GetByIDOrCode(ctx context.Context, key string) (model.Venue, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{Field: model.FieldCode, Value: key, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldID, ArgName: "id_text", Value: key, Operator: gDto.FilterOperatorTextEq, Table: model.TableName},
		},
	}

	return r.Get(ctx, filter) //nolint:wrapcheck
}

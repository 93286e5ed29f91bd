package shared_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"venuebook/shared"
	"venuebook/shared/cache"
	"venuebook/shared/cache/mocks"
	"venuebook/shared/constant"
	"venuebook/shared/dto"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{name: "no rows", total: 0, limit: 10, want: 1},
		{name: "exact fit", total: 20, limit: 10, want: 2},
		{name: "partial last page", total: 21, limit: 10, want: 3},
		{name: "fewer than a page", total: 3, limit: 10, want: 1},
		{name: "zero limit", total: 5, limit: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

type statusUpdate struct {
	Status   string  `db:"status"`
	Note     *string `db:"note"`
	Price    int64   `db:"price"`
	Internal string  `db:"-"`
	Untagged string
}

func TestTransformFields(t *testing.T) {
	at := time.Date(2021, time.October, 21, 9, 30, 0, 0, time.UTC)
	note := "paid at desk"

	tests := []struct {
		name string
		data any
		want map[string]any
	}{
		{
			name: "value with zero fields skipped",
			data: statusUpdate{Status: "Paid", Internal: "x", Untagged: "y"},
			want: map[string]any{
				"status":                 "Paid",
				constant.FieldModifiedAt: at,
				constant.FieldModifiedBy: "user-1",
			},
		},
		{
			name: "pointer struct and pointer field",
			data: &statusUpdate{Note: &note, Price: 2001},
			want: map[string]any{
				"note":                   "paid at desk",
				"price":                  int64(2001),
				constant.FieldModifiedAt: at,
				constant.FieldModifiedBy: "user-1",
			},
		},
		{
			name: "not a struct",
			data: "Paid",
			want: map[string]any{
				constant.FieldModifiedAt: at,
				constant.FieldModifiedBy: "user-1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.TransformFields(tt.data, "user-1", at))
		})
	}
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("b-1", "id", "bookings")

	assert.Equal(t, dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "id", Value: "b-1", Operator: dto.FilterOperatorEq, Table: "bookings"},
		},
	}, group)

	where, args := group.GetWhereClause()
	assert.Contains(t, where, "bookings.id")
	assert.Equal(t, "b-1", args["id"])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "availability", shared.BuildCacheKey(constant.CacheKeyAvailability))
	assert.Equal(t, "availability:v1:2021-10-21:90", shared.BuildCacheKey(constant.CacheKeyAvailability, "v1", "2021-10-21", "90"))
	assert.Equal(t, "availability:v1:90", shared.BuildCacheKey(constant.CacheKeyAvailability, "v1", "", "90"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	paid := dto.FilterGroup{Filters: []any{dto.Filter{Field: "status", Value: "Paid", Operator: dto.FilterOperatorEq}}}
	cancelled := dto.FilterGroup{Filters: []any{dto.Filter{Field: "status", Value: "Cancelled", Operator: dto.FilterOperatorEq}}}

	first := shared.BuildCacheKeyWithQuery("booking:gets", params, paid)

	assert.Equal(t, first, shared.BuildCacheKeyWithQuery("booking:gets", params, paid))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("booking:gets", params, cancelled))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("booking:gets", dto.QueryParams{Page: 2, Limit: 10}, paid))
	assert.Regexp(t, `^booking:gets:[0-9a-f]{16}$`, first)
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "availability:v1:*").Return(nil)
	redisCache.EXPECT().Clear(gomock.Any(), "availability:FIELD-A:*").Return(assert.AnError)

	shared.InvalidateCaches(context.Background(), redisCache, "availability:v1", "availability:FIELD-A")
}

func TestAvailabilityGeneration(t *testing.T) {
	tests := []struct {
		name    string
		result  func(value any) error
		wantGen string
		wantOK  bool
	}{
		{
			name: "issued",
			result: func(value any) error {
				*value.(*string) = "gen-1"

				return nil
			},
			wantGen: "gen-1",
			wantOK:  true,
		},
		{
			name:   "never issued",
			result: func(any) error { return cache.Nil },
			wantOK: true,
		},
		{
			name:   "redis down",
			result: func(any) error { return errors.New("connection refused") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			redisCache := mocks.NewMockRedisCache(gomock.NewController(t))
			redisCache.EXPECT().Get(gomock.Any(), "availability_generation:v1", gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, value any) error { return tt.result(value) })

			generation, ok := shared.AvailabilityGeneration(context.Background(), redisCache, "v1")

			assert.Equal(t, tt.wantGen, generation)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestRotateAvailability(t *testing.T) {
	redisCache := mocks.NewMockRedisCache(gomock.NewController(t))

	var issued []string

	record := func(_ context.Context, _ string, value any, _ int) error {
		token, _ := value.(string)
		issued = append(issued, token)

		return nil
	}

	redisCache.EXPECT().Save(gomock.Any(), "availability_generation:v1", gomock.Any(), 600).DoAndReturn(record)
	redisCache.EXPECT().Save(gomock.Any(), "availability_generation:v2", gomock.Any(), 600).DoAndReturn(record)

	shared.RotateAvailability(context.Background(), redisCache, 300, "v1", "v2")

	assert.Len(t, issued, 2)
	assert.NotEmpty(t, issued[0])
	assert.NotEqual(t, issued[0], issued[1])
}

package shared

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"venuebook/shared/cache"
	"venuebook/shared/constant"
	"venuebook/shared/dto"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CalculateTotalPage never reports fewer than one page.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// TransformFields turns the non-zero db-tagged fields of a struct (or pointer to one) into an update set,
// stamped with modified_at and modified_by. Pointer fields are dereferenced.
func TransformFields(data any, username string, at time.Time) map[string]any {
	updatedFields := map[string]any{
		constant.FieldModifiedAt: at,
		constant.FieldModifiedBy: username,
	}

	val := reflect.Indirect(reflect.ValueOf(data))
	if val.Kind() != reflect.Struct {
		return updatedFields
	}

	typ := val.Type()

	for index := range val.NumField() {
		field := val.Field(index)

		fieldName, _, _ := strings.Cut(typ.Field(index).Tag.Get("db"), ",")
		if fieldName == "" || fieldName == "-" || field.IsZero() {
			continue
		}

		updatedFields[fieldName] = reflect.Indirect(field).Interface()
	}

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins the non-empty parts under prefix, e.g. "availability:v1:2021-10-21:90".
func BuildCacheKey(prefix string, parts ...string) string {
	key := []string{prefix}

	for _, part := range parts {
		if part == "" {
			continue
		}

		key = append(key, part)
	}

	return strings.Join(key, constant.CacheKeySeparator)
}

// BuildCacheKeyWithQuery keys a list query by a digest of its paging and filter arguments.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	raw, err := json.Marshal(struct {
		Params dto.QueryParams `json:"params"`
		Where  string          `json:"where"`
		Args   map[string]any  `json:"args"`
	}{params, where, args})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal query for cache key")
	}

	sum := sha256.Sum256(raw)

	return BuildCacheKey(prefix, hex.EncodeToString(sum[:8]))
}

// InvalidateCaches clears every key under the given prefixes. Failures are logged, not returned.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefixes ...string) {
	for _, prefix := range prefixes {
		pattern := prefix + constant.CacheKeySeparator + constant.Asterix

		if err := redisCache.Clear(ctx, pattern); err != nil {
			log.Error().Err(err).Str("pattern", pattern).Msg("failed to invalidate cache")
		}
	}
}

// AvailabilityGeneration returns the token the venue's availability is currently cached under, empty when
// none was issued yet. ok is false when redis failed and nothing should be cached.
func AvailabilityGeneration(ctx context.Context, redisCache cache.RedisCache, venueID string) (generation string, ok bool) {
	err := redisCache.Get(ctx, BuildCacheKey(constant.CacheKeyAvailabilityGeneration, venueID), &generation)
	if err == nil {
		return generation, true
	}

	if cache.IsMiss(err) {
		return "", true
	}

	log.Warn().Err(err).Str("venue", venueID).Msg("failed to read availability generation")

	return "", false
}

// RotateAvailability issues a fresh generation for each venue. Results saved under an older one,
// including those computed from data read before the change, are never served again.
// The token lives for twice ttl so keys saved without a generation expire before it does.
func RotateAvailability(ctx context.Context, redisCache cache.RedisCache, ttl int, venueIDs ...string) {
	for _, venueID := range venueIDs {
		key := BuildCacheKey(constant.CacheKeyAvailabilityGeneration, venueID)

		if err := redisCache.Save(ctx, key, uuid.NewString(), 2*ttl); err != nil {
			log.Error().Err(err).Str("venue", venueID).Msg("failed to rotate availability generation")
		}
	}
}

package shared

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"nightlife/shared/cache"
	"nightlife/shared/constant"
	"nightlife/shared/dto"
	"nightlife/shared/timezone"
	"reflect"
	"strings"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

// CalculateTotalPage never returns less than one page.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// TransformFields converts the non-zero db-tagged fields of a struct (or
// pointer to one) into an update patch stamped with the modifying actor.
func TransformFields(data any, actor string) map[string]any {
	val := reflect.Indirect(reflect.ValueOf(data))
	patch := make(map[string]any)

	if val.Kind() == reflect.Struct {
		typ := val.Type()

		for index := range val.NumField() {
			column := typ.Field(index).Tag.Get("db")
			if column == "" || column == "-" || val.Field(index).IsZero() {
				continue
			}

			patch[column] = val.Field(index).Interface()
		}
	}

	patch[constant.FieldModifiedAt] = timezone.Now()
	patch[constant.FieldModifiedBy] = actor

	return patch
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

// FilterByFields ANDs equality filters for every field/value pair, in the given order.
func FilterByFields(table string, pairs ...any) dto.FilterGroup {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	for i := 0; i+1 < len(pairs); i += 2 {
		field, _ := pairs[i].(string)

		group.Filters = append(group.Filters, dto.Filter{
			Field:    field,
			Value:    pairs[i+1],
			Operator: dto.FilterOperatorEq,
			Table:    table,
		})
	}

	return group
}

func BuildCacheKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}

	return prefix + cacheKeySeparator + strings.Join(parts, cacheKeySeparator)
}

// BuildCacheKeyWithQuery keys a list query by a digest of its paging and filters.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	raw, err := json.Marshal(struct {
		Params dto.QueryParams `json:"params"`
		Where  string          `json:"where"`
		Args   map[string]any  `json:"args"`
	}{params, where, args})
	if err != nil {
		log.Warn().Err(err).Str("prefix", prefix).Msg("failed to marshal cache query, falling back to prefix key")

		return prefix
	}

	sum := sha256.Sum256(raw)

	return BuildCacheKey(prefix, hex.EncodeToString(sum[:]))
}

// InvalidateCaches removes every key under prefix. Failures are logged only.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

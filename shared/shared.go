package shared

import (
	"context"
	"crypto/sha1" //nolint:gosec
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/timezone"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

// ParseOptionalBool reads an optional query flag. Empty or unparsable input means unset.
func ParseOptionalBool(value string) *bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Debug().Str("value", value).Msg("ignoring non boolean flag")

		return nil
	}

	return &parsed
}

func ParseInt(value string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("parse int %q: %w", value, err)
	}

	return parsed, nil
}

// TotalPages never reports fewer than one page so clients can always render page 1.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// ChangedFields turns a partial update request into the column map for
// Repository.Update. Zero fields are left out, pointers count as set when non-nil,
// and the audit columns are always stamped with actor.
func ChangedFields(data any, actor string) map[string]any {
	value := reflect.Indirect(reflect.ValueOf(data))
	fields := make(map[string]any, value.NumField()+2)

	for i := range value.NumField() {
		column := value.Type().Field(i).Tag.Get("db")
		if column == "" || column == "-" || value.Field(i).IsZero() {
			continue
		}

		fields[column] = value.Field(i).Interface()
	}

	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = actor

	return fields
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

// BuildCacheKey joins the prefix and parts with ":".
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a stable key from the paging params and filter.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	raw, err := json.Marshal(struct {
		Params dto.QueryParams `json:"params"`
		Where  string          `json:"where"`
		Args   map[string]any  `json:"args"`
	}{params, where, args})
	if err != nil {
		log.Warn().Err(err).Str("prefix", prefix).Msg("failed to marshal cache key query")

		return BuildCacheKey(prefix, where)
	}

	sum := sha1.Sum(raw) //nolint:gosec

	return BuildCacheKey(prefix, hex.EncodeToString(sum[:]))
}

// InvalidateCaches removes every key under prefix.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// CurrentUser returns the authenticated user id and role stored by the auth middleware.
func CurrentUser(ctx context.Context) (userID, role string) {
	userID, _ = ctx.Value(constant.ContextKeyUserID).(string)
	role, _ = ctx.Value(constant.ContextKeyUserRole).(string)

	return userID, role
}

// IsStaff reports whether the role may act on other guests' records.
func IsStaff(role string) bool {
	return role == constant.RoleAdmin || role == constant.RoleStaff
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

// IsUniqueViolation reports whether err carries a postgres unique constraint violation.
func IsUniqueViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeUniqueViolation
}

// IsForeignKeyViolation reports whether err is a write blocked by a referencing row.
func IsForeignKeyViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeFkViolation
}

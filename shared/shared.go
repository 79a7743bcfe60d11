package shared

import (
	"context"
	"reflect"
	"shareit/shared/constant"
	"shareit/shared/dto"
	"strconv"
	"strings"
	"time"
)

const (
	cacheKeySeparator = ":"
)

// ParseBool reads an optional boolean query value. ok is false when the value is
// missing or not a boolean strconv understands.
func ParseBool(value string) (parsed, ok bool) {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, false
	}

	return parsed, true
}

// ChangedColumns maps the non zero db tagged fields of a struct to their columns and
// stamps the row with the modifying actor and instant.
func ChangedColumns(changes any, actor string, at time.Time) map[string]any {
	value := reflect.ValueOf(changes)
	columns := map[string]any{
		constant.FieldModifiedAt: at,
		constant.FieldModifiedBy: actor,
	}

	for _, field := range reflect.VisibleFields(value.Type()) {
		column := field.Tag.Get("db")
		if column == "" {
			continue
		}

		if fieldValue := value.FieldByIndex(field.Index); !fieldValue.IsZero() {
			columns[column] = fieldValue.Interface()
		}
	}

	return columns
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []dto.Clause{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins a key prefix and its parts, e.g. "item:get:42".
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// UserIDFromContext returns the caller id placed into the context by the identity middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)

	return userID, ok && userID != ""
}

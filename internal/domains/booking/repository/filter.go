package repository

import (
	"fmt"
	"shareit/internal/domains/booking/model"
	gDto "shareit/shared/dto"
	"time"
)

const (
	argNow          = "now"
	argCurrentStart = "current_start"
	argCurrentEnd   = "current_end"
	argOwnerID      = "item_owner_id"
	argStatus       = "current_status"
)

// OrderByStart is the sort column of listings and projections.
const (
	OrderByStart = model.TableName + "." + model.FieldStart
)

// BuildFilter translates a subject and a state into one where clause. The subject is the
// booker or the owner of the booked item, now is the instant the temporal states compare against.
func BuildFilter(role model.Role, subjectID string, state model.State, now time.Time) (gDto.FilterGroup, error) {
	filters := []gDto.Clause{}

	switch role {
	case model.RoleBooker:
		filters = append(filters, gDto.Filter{
			Field:    model.FieldBookerID,
			Operator: gDto.FilterOperatorEq,
			Value:    subjectID,
			Table:    model.TableName,
		})
	case model.RoleOwner:
		filters = append(filters, gDto.Filter{
			ArgName:  argOwnerID,
			Field:    model.FieldItemOwnerID,
			Operator: gDto.FilterOperatorEq,
			Value:    subjectID,
			Table:    model.ItemTableName,
		})
	default:
		return gDto.FilterGroup{}, fmt.Errorf("unknown booking role %q", role)
	}

	switch state {
	case model.StateAll:
	case model.StateCurrent:
		filters = append(filters,
			gDto.Filter{
				ArgName:  argCurrentStart,
				Field:    model.FieldStart,
				Operator: gDto.FilterOperatorLessEq,
				Value:    now,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  argCurrentEnd,
				Field:    model.FieldEnd,
				Operator: gDto.FilterOperatorGreater,
				Value:    now,
				Table:    model.TableName,
			},
		)
	case model.StatePast:
		filters = append(filters, gDto.Filter{
			ArgName:  argNow,
			Field:    model.FieldEnd,
			Operator: gDto.FilterOperatorLess,
			Value:    now,
			Table:    model.TableName,
		})
	case model.StateFuture:
		filters = append(filters, gDto.Filter{
			ArgName:  argNow,
			Field:    model.FieldStart,
			Operator: gDto.FilterOperatorGreater,
			Value:    now,
			Table:    model.TableName,
		})
	case model.StateWaiting, model.StateRejected:
		filters = append(filters, FilterByStatus(model.Status(state)))
	default:
		return gDto.FilterGroup{}, model.UnsupportedState(string(state)) //nolint:wrapcheck
	}

	return gDto.FilterGroup{
		Filters:  filters,
		Operator: gDto.FilterGroupOperatorAnd,
	}, nil
}

func FilterByStatus(status model.Status) gDto.Filter {
	return gDto.Filter{
		ArgName:  argStatus,
		Field:    model.FieldStatus,
		Operator: gDto.FilterOperatorEq,
		Value:    status,
		Table:    model.TableName,
	}
}

// FilterWaitingByID matches the booking only while it is still undecided, so a concurrent
// decision loses the update instead of overwriting the first one.
func FilterWaitingByID(id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []gDto.Clause{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.TableName,
			},
			FilterByStatus(model.StatusWaiting),
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

func FilterByItem(itemID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []gDto.Clause{
			gDto.Filter{
				Field:    model.FieldItemID,
				Operator: gDto.FilterOperatorEq,
				Value:    itemID,
				Table:    model.TableName,
			},
		},
	}
}

// FilterFinishedByBooker matches bookings of the item made by the user that ended before asOf.
func FilterFinishedByBooker(userID, itemID string, asOf time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []gDto.Clause{
			gDto.Filter{
				Field:    model.FieldBookerID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldItemID,
				Operator: gDto.FilterOperatorEq,
				Value:    itemID,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  argNow,
				Field:    model.FieldEnd,
				Operator: gDto.FilterOperatorLess,
				Value:    asOf,
				Table:    model.TableName,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

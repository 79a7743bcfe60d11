package repository_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/domains/booking/model"
	"shareit/internal/domains/booking/repository"
	"shareit/shared/failure"
)

func TestBuildFilter(t *testing.T) {
	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		role      model.Role
		state     model.State
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "booker all",
			role:      model.RoleBooker,
			state:     model.StateAll,
			wantWhere: "(bookings.booker_id = :booker_id)",
			wantArgs:  map[string]any{"booker_id": "u1"},
		},
		{
			name:      "owner all joins on item owner",
			role:      model.RoleOwner,
			state:     model.StateAll,
			wantWhere: "(items.owner_id = :item_owner_id)",
			wantArgs:  map[string]any{"item_owner_id": "u1"},
		},
		{
			name:      "booker current",
			role:      model.RoleBooker,
			state:     model.StateCurrent,
			wantWhere: "(bookings.booker_id = :booker_id AND bookings.start_date <= :current_start AND bookings.end_date > :current_end)",
			wantArgs:  map[string]any{"booker_id": "u1", "current_start": now, "current_end": now},
		},
		{
			name:      "owner past",
			role:      model.RoleOwner,
			state:     model.StatePast,
			wantWhere: "(items.owner_id = :item_owner_id AND bookings.end_date < :now)",
			wantArgs:  map[string]any{"item_owner_id": "u1", "now": now},
		},
		{
			name:      "booker future",
			role:      model.RoleBooker,
			state:     model.StateFuture,
			wantWhere: "(bookings.booker_id = :booker_id AND bookings.start_date > :now)",
			wantArgs:  map[string]any{"booker_id": "u1", "now": now},
		},
		{
			name:      "booker waiting",
			role:      model.RoleBooker,
			state:     model.StateWaiting,
			wantWhere: "(bookings.booker_id = :booker_id AND bookings.status = :current_status)",
			wantArgs:  map[string]any{"booker_id": "u1", "current_status": model.StatusWaiting},
		},
		{
			name:      "owner rejected",
			role:      model.RoleOwner,
			state:     model.StateRejected,
			wantWhere: "(items.owner_id = :item_owner_id AND bookings.status = :current_status)",
			wantArgs:  map[string]any{"item_owner_id": "u1", "current_status": model.StatusRejected},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := repository.BuildFilter(tt.role, "u1", tt.state, now)
			require.NoError(t, err)

			where, args := filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildFilter_Errors(t *testing.T) {
	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

	_, err := repository.BuildFilter(model.RoleBooker, "u1", model.State("SOMEDAY"), now)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Equal(t, "Unknown state: SOMEDAY", err.Error())

	_, err = repository.BuildFilter(model.Role("GUEST"), "u1", model.StateAll, now)
	assert.Error(t, err)
}

func TestFilterWaitingByID(t *testing.T) {
	filter := repository.FilterWaitingByID("b1")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.id = :id AND bookings.status = :current_status)", where)
	assert.Equal(t, map[string]any{"id": "b1", "current_status": model.StatusWaiting}, args)
}

func TestFilterByItem(t *testing.T) {
	filter := repository.FilterByItem("i1")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.item_id = :item_id)", where)
	assert.Equal(t, map[string]any{"item_id": "i1"}, args)
}

func TestFilterFinishedByBooker(t *testing.T) {
	asOf := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

	filter := repository.FilterFinishedByBooker("u1", "i1", asOf)

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.booker_id = :booker_id AND bookings.item_id = :item_id AND bookings.end_date < :now)", where)
	assert.Equal(t, map[string]any{"booker_id": "u1", "item_id": "i1", "now": asOf}, args)
}

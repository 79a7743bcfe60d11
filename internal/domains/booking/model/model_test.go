package model_test

import (
	"errors"
	"net/http"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"shareit/internal/domains/booking/model"
	"shareit/shared/failure"
)

var now = time.Date(2030, 6, 10, 12, 0, 0, 0, time.UTC)

func TestBooking_Decide(t *testing.T) {
	waiting := model.Booking{ID: "b1", Status: model.StatusWaiting, Start: now, End: now.Add(time.Hour)}

	approved, err := waiting.Decide(true)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, approved.Status)
	assert.Equal(t, model.StatusWaiting, waiting.Status)

	rejected, err := waiting.Decide(false)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, rejected.Status)

	_, err = approved.Decide(false)
	require.ErrorIs(t, err, model.ErrInvalidTransition)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.Equal(t, "booking is already approved or rejected", err.Error())
}

func TestBooking_DecideProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		status := rapid.SampledFrom([]model.Status{model.StatusWaiting, model.StatusApproved, model.StatusRejected}).Draw(t, "status")
		first := rapid.Bool().Draw(t, "first")
		second := rapid.Bool().Draw(t, "second")

		booking := model.Booking{
			ID:       "b1",
			ItemID:   "i1",
			BookerID: "u2",
			Start:    now,
			End:      now.Add(time.Hour),
			Status:   status,
		}

		decided, err := booking.Decide(first)
		if status != model.StatusWaiting {
			if err == nil {
				t.Fatalf("terminal status %s accepted a decision", status)
			}

			return
		}

		if err != nil {
			t.Fatalf("waiting booking rejected a decision: %v", err)
		}

		if decided.Status == model.StatusWaiting {
			t.Fatal("decision returned to WAITING")
		}

		decided.Status = booking.Status
		if decided != booking {
			t.Fatal("decision changed a field other than status")
		}

		decided, _ = booking.Decide(first)
		if _, err := decided.Decide(second); !errors.Is(err, model.ErrInvalidTransition) {
			t.Fatalf("second decision returned %v", err)
		}
	})
}

func TestBooking_VisibleTo(t *testing.T) {
	booking := model.Booking{BookerID: "u2", ItemOwnerID: "u1"}

	assert.True(t, booking.VisibleTo("u1"))
	assert.True(t, booking.VisibleTo("u2"))
	assert.False(t, booking.VisibleTo("u3"))
}

func TestParseState(t *testing.T) {
	tests := []struct {
		raw     string
		want    model.State
		wantErr bool
	}{
		{raw: "", want: model.StateAll},
		{raw: "all", want: model.StateAll},
		{raw: "Current", want: model.StateCurrent},
		{raw: "PAST", want: model.StatePast},
		{raw: "future", want: model.StateFuture},
		{raw: "WAITING", want: model.StateWaiting},
		{raw: "rejected", want: model.StateRejected},
		{raw: "APPROVED", wantErr: true},
		{raw: "UNSUPPORTED_STATUS", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			state, err := model.ParseState(tt.raw)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
				assert.Equal(t, "Unknown state: "+tt.raw, err.Error())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, state)
		})
	}
}

func TestParseStateProperties(t *testing.T) {
	known := []model.State{model.StateAll, model.StateCurrent, model.StatePast, model.StateFuture, model.StateWaiting, model.StateRejected}

	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.String().Draw(t, "raw")

		state, err := model.ParseState(raw)
		if err != nil {
			return
		}

		if !slices.Contains(known, state) {
			t.Fatalf("parsed %q into unknown state %q", raw, state)
		}

		again, err := model.ParseState(strings.ToLower(string(state)))
		if err != nil || again != state {
			t.Fatalf("state %q does not round trip", state)
		}
	})
}

func TestValidateTimeRange(t *testing.T) {
	hour := time.Hour

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{name: "future range", start: now.Add(hour), end: now.Add(2 * hour)},
		{name: "starts now", start: now, end: now.Add(hour)},
		{name: "start in the past", start: now.Add(-hour), end: now.Add(hour), wantErr: true},
		{name: "end in the past", start: now.Add(hour), end: now.Add(-hour), wantErr: true},
		{name: "end equals start", start: now.Add(hour), end: now.Add(hour), wantErr: true},
		{name: "end before start", start: now.Add(2 * hour), end: now.Add(hour), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := model.ValidateTimeRange(tt.start, tt.end, now)

			if tt.wantErr {
				require.ErrorIs(t, err, model.ErrInvalidTimeRange)
				assert.Equal(t, "start | end", failure.GetField(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestValidateTimeRangeProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		start := now.Add(time.Duration(rapid.IntRange(-1000, 1000).Draw(t, "start")) * time.Minute)
		end := now.Add(time.Duration(rapid.IntRange(-1000, 1000).Draw(t, "end")) * time.Minute)

		if model.ValidateTimeRange(start, end, now) == nil && !start.Before(end) {
			t.Fatalf("accepted start %v not before end %v", start, end)
		}
	})
}

func TestNextAndLastBooking(t *testing.T) {
	at := func(hours int) time.Time { return now.Add(time.Duration(hours) * time.Hour) }

	bookings := []model.Booking{
		{ID: "b1", Start: at(-10), End: at(-8)},
		{ID: "b2", Start: at(-6), End: at(-4), Status: model.StatusRejected},
		{ID: "b3", Start: at(-1), End: at(1)},
		{ID: "b4", Start: at(2), End: at(3)},
		{ID: "b5", Start: at(5), End: at(6)},
	}

	next := model.NextBooking(bookings, now)
	require.NotNil(t, next)
	assert.Equal(t, "b4", next.ID)

	last := model.LastBooking(bookings, now)
	require.NotNil(t, last)
	assert.Equal(t, "b2", last.ID)

	assert.Nil(t, model.NextBooking(bookings[:3], now))
	assert.Nil(t, model.LastBooking(bookings[2:], now))
	assert.Nil(t, model.NextBooking(nil, now))
	assert.Nil(t, model.LastBooking(nil, now))
}

func TestNextAndLastBookingProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		offsets := rapid.SliceOfN(rapid.IntRange(-100, 100), 0, 20).Draw(t, "offsets")
		slices.Sort(offsets)

		bookings := make([]model.Booking, 0, len(offsets))
		for i, offset := range offsets {
			start := now.Add(time.Duration(offset) * time.Hour)
			length := rapid.IntRange(1, 48).Draw(t, "length")

			bookings = append(bookings, model.Booking{
				ID:    string(rune('a' + i)),
				Start: start,
				End:   start.Add(time.Duration(length) * time.Hour),
			})
		}

		next := model.NextBooking(bookings, now)
		last := model.LastBooking(bookings, now)

		for _, booking := range bookings {
			if booking.Start.After(now) && (next == nil || booking.Start.Before(next.Start)) {
				t.Fatalf("next booking missed %s", booking.ID)
			}

			if booking.End.Before(now) && (last == nil || booking.Start.After(last.Start)) {
				t.Fatalf("last booking missed %s", booking.ID)
			}
		}

		if next != nil && !next.Start.After(now) {
			t.Fatalf("next booking %s does not start after now", next.ID)
		}

		if last != nil && !last.End.Before(now) {
			t.Fatalf("last booking %s has not ended", last.ID)
		}
	})
}

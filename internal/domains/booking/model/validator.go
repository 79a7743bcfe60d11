package model

import (
	"shareit/shared/failure"
	"time"
)

var (
	ErrItemUnavailable  = failure.FieldValidation("item_id", "item is unavailable")
	ErrInvalidTimeRange = failure.FieldValidation("start | end", "invalid time range")
)

// ValidateTimeRange rejects a start or end in the past and an end that is not after start.
func ValidateTimeRange(start, end, now time.Time) error {
	if start.Before(now) || end.Before(now) || !end.After(start) {
		return ErrInvalidTimeRange
	}

	return nil
}

// NextBooking returns the first booking starting after asOf. Input must be ordered by start ascending.
func NextBooking(bookings []Booking, asOf time.Time) *Booking {
	for _, booking := range bookings {
		if booking.Start.After(asOf) {
			return &booking
		}
	}

	return nil
}

// LastBooking returns the latest-starting booking that ended before asOf. Input must be ordered by start ascending.
func LastBooking(bookings []Booking, asOf time.Time) *Booking {
	for i := len(bookings) - 1; i >= 0; i-- {
		if bookings[i].End.Before(asOf) {
			booking := bookings[i]

			return &booking
		}
	}

	return nil
}

package model

import bookingModel "shareit/internal/domains/booking/model"

// Projection is the booking history of one item seen from a single instant.
type Projection struct {
	Next *bookingModel.Booking
	Last *bookingModel.Booking
}

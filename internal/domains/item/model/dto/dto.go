package dto

import (
	availabilityModel "shareit/internal/domains/availability/model"
	bookingDto "shareit/internal/domains/booking/model/dto"
	"shareit/internal/domains/item/model"
	gDto "shareit/shared/dto"
)

type ItemResponse struct {
	ID          string                           `json:"id"`
	Name        string                           `json:"name"`
	Description string                           `json:"description"`
	Available   bool                             `json:"available"`
	OwnerID     string                           `json:"owner_id"`
	RequestID   *string                          `json:"request_id,omitempty"`
	LastBooking *bookingDto.ShortBookingResponse `json:"last_booking"`
	NextBooking *bookingDto.ShortBookingResponse `json:"next_booking"`
	CanComment  *bool                            `json:"can_comment,omitempty"`
	gDto.Audit
}

func (r *ItemResponse) FromModel(model model.Item, projection availabilityModel.Projection) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Available = model.Available
	r.OwnerID = model.OwnerID
	r.RequestID = model.RequestID
	r.LastBooking = bookingDto.NewShortBookingResponse(projection.Last)
	r.NextBooking = bookingDto.NewShortBookingResponse(projection.Next)
	r.Audit = gDto.NewAudit(model.Metadata)
}

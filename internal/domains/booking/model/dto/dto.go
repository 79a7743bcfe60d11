package dto

import (
	"encoding/json"
	"shareit/internal/domains/booking/model"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	gModel "shareit/shared/model"
	"shareit/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ItemID string    `json:"item_id" validate:"required,notblank"`
	Start  time.Time `json:"start"   validate:"required"`
	End    time.Time `json:"end"     validate:"required"`
}

// UnmarshalJSON accepts start and end with or without a zone offset. Zone-less
// values are wall clock times in the application timezone.
func (c *CreateBookingRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		ItemID string `json:"item_id"`
		Start  string `json:"start"`
		End    string `json:"end"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err //nolint:wrapcheck
	}

	*c = CreateBookingRequest{ItemID: raw.ItemID}

	for _, field := range []struct {
		value string
		dest  *time.Time
	}{{raw.Start, &c.Start}, {raw.End, &c.End}} {
		if field.value == "" {
			continue
		}

		parsed, err := timezone.Parse(field.value)
		if err != nil {
			return err //nolint:wrapcheck
		}

		*field.dest = parsed
	}

	return nil
}

// ToModel builds a new waiting booking for the caller.
func (c *CreateBookingRequest) ToModel(bookerID string, now time.Time) model.Booking {
	return model.Booking{
		ID:       uuid.NewString(),
		ItemID:   c.ItemID,
		BookerID: bookerID,
		Start:    c.Start,
		End:      c.End,
		Status:   model.StatusWaiting,
		Metadata: gModel.New(bookerID, now),
	}
}

type DecideBookingRequest struct {
	Status model.Status `db:"status"`
}

type ItemSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	OwnerID string `json:"owner_id"`
}

type BookerSummary struct {
	ID string `json:"id"`
}

type BookingResponse struct {
	ID     string        `json:"id"`
	Start  string        `json:"start"`
	End    string        `json:"end"`
	Status string        `json:"status"`
	Item   ItemSummary   `json:"item"`
	Booker BookerSummary `json:"booker"`
	gDto.Audit
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.Start = timezone.Format(model.Start, constant.TimeLayout)
	r.End = timezone.Format(model.End, constant.TimeLayout)
	r.Status = string(model.Status)
	r.Item = ItemSummary{
		ID:      model.ItemID,
		Name:    model.ItemName,
		OwnerID: model.ItemOwnerID,
	}
	r.Booker = BookerSummary{ID: model.BookerID}
	r.Audit = gDto.NewAudit(model.Metadata)
}

func FromModels(models []model.Booking) []BookingResponse {
	res := make([]BookingResponse, 0, len(models))

	for _, booking := range models {
		var item BookingResponse

		item.FromModel(booking)
		res = append(res, item)
	}

	return res
}

// ShortBookingResponse is the booking reference embedded in item details.
type ShortBookingResponse struct {
	ID       string `json:"id"`
	BookerID string `json:"booker_id"`
}

func NewShortBookingResponse(booking *model.Booking) *ShortBookingResponse {
	if booking == nil {
		return nil
	}

	return &ShortBookingResponse{
		ID:       booking.ID,
		BookerID: booking.BookerID,
	}
}

const (
	EventTypeCreated = "booking.created"
	EventTypeDecided = "booking.decided"
)

// BookingEvent is published whenever a booking is created or decided.
type BookingEvent struct {
	Type       string `json:"type"`
	BookingID  string `json:"booking_id"`
	ItemID     string `json:"item_id"`
	BookerID   string `json:"booker_id"`
	OwnerID    string `json:"owner_id"`
	Status     string `json:"status"`
	Start      string `json:"start"`
	End        string `json:"end"`
	OccurredAt string `json:"occurred_at"`
}

func NewBookingEvent(eventType string, booking model.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		ItemID:     booking.ItemID,
		BookerID:   booking.BookerID,
		OwnerID:    booking.ItemOwnerID,
		Status:     string(booking.Status),
		Start:      timezone.Format(booking.Start, constant.TimeLayout),
		End:        timezone.Format(booking.End, constant.TimeLayout),
		OccurredAt: timezone.Format(at, constant.TimeLayout),
	}
}

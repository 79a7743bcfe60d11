package model

import (
	"shareit/shared/failure"
	"shareit/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID       = "id"
	FieldItemID   = "item_id"
	FieldBookerID = "booker_id"
	FieldStart    = "start_date"
	FieldEnd      = "end_date"
	FieldStatus   = "status"

	ItemTableName    = "items"
	FieldItemOwnerID = "owner_id"
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

var (
	ErrInvalidTransition = failure.Conflict("booking is already approved or rejected")
)

type Booking struct {
	ID          string    `db:"id"`
	ItemID      string    `db:"item_id"`
	BookerID    string    `db:"booker_id"`
	Start       time.Time `db:"start_date"`
	End         time.Time `db:"end_date"`
	Status      Status    `db:"status"`
	ItemOwnerID string    `column:"owner_id" db:"item_owner_id" table:"items"`
	ItemName    string    `column:"name"     db:"item_name"     table:"items"`
	model.Metadata
}

// JoinClause exposes the item owner on every read.
func (Booking) JoinClause() string {
	return "JOIN items ON items.id = bookings.item_id"
}

// Decide moves a waiting booking to APPROVED or REJECTED. Both outcomes are terminal.
func (b Booking) Decide(approve bool) (Booking, error) {
	if b.Status != StatusWaiting {
		return b, ErrInvalidTransition
	}

	if approve {
		b.Status = StatusApproved
	} else {
		b.Status = StatusRejected
	}

	return b, nil
}

// VisibleTo reports whether the user is the booker or the owner of the booked item.
func (b Booking) VisibleTo(userID string) bool {
	return b.BookerID == userID || b.ItemOwnerID == userID
}

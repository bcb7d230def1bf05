package model

import (
	"time"

	"lodge/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldRoomID        = "room_id"
	FieldRoomNo        = "room_no"
	FieldGuestName     = "guest_name"
	FieldCustomerPhone = "customer_phone"
	FieldPersons       = "persons"
	FieldIDProof       = "id_proof"
	FieldAmount        = "amount"
	FieldCheckIn       = "check_in"
	FieldCheckOut      = "check_out"
	FieldStatus        = "status"
)

const (
	StatusActive    = "Active"
	StatusCompleted = "Completed"
	StatusExtended  = "Extended"
)

type Booking struct {
	ID            string     `db:"id"`
	RoomID        string     `db:"room_id"`
	RoomNo        string     `db:"room_no"`
	GuestName     string     `db:"guest_name"`
	CustomerPhone string     `db:"customer_phone"`
	Persons       int        `db:"persons"`
	IDProof       string     `db:"id_proof"`
	Amount        float64    `db:"amount"`
	CheckIn       time.Time  `db:"check_in"`
	CheckOut      *time.Time `db:"check_out"`
	Status        string     `db:"status"`
	model.Metadata
}

package model

import "lodge/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID       = "id"
	FieldRoomNo   = "room_no"
	FieldRoomType = "room_type"
	FieldStatus   = "status"
)

const (
	StatusAvailable = "Available"
	StatusBooked    = "Booked"
)

const (
	TypeAC    = "AC"
	TypeNonAC = "Non-AC"
	TypeBoth  = "Both"
)

type Room struct {
	ID       string `db:"id"`
	RoomNo   string `db:"room_no"`
	RoomType string `db:"room_type"`
	Status   string `db:"status"`
	model.Metadata
}

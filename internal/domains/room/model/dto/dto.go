package dto

import (
	"lodge/internal/domains/room/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	RoomNo   string `json:"room_no"   validate:"required,max=20"`
	RoomType string `json:"room_type" validate:"required,oneof=AC Non-AC Both"`
}

// ToModel builds a room that always starts out Available; the status
// field is owned by the booking lifecycle, not by room management.
func (c *CreateRoomRequest) ToModel(user string) model.Room {
	return model.Room{
		ID:       uuid.NewString(),
		RoomNo:   c.RoomNo,
		RoomType: c.RoomType,
		Status:   model.StatusAvailable,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	RoomNo   string `db:"room_no"   json:"room_no"   validate:"omitempty,max=20"`
	RoomType string `db:"room_type" json:"room_type" validate:"omitempty,oneof=AC Non-AC Both"`
	Status   string `db:"status"    json:"status"    validate:"omitempty,oneof=Available Booked"`
}

type RoomResponse struct {
	ID       string `json:"id"`
	RoomNo   string `json:"room_no"`
	RoomType string `json:"room_type"`
	Status   string `json:"status"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNo = model.RoomNo
	r.RoomType = model.RoomType
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

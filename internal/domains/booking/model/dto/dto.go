package dto

import (
	"time"

	"lodge/internal/domains/booking/model"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

type RoomSelection struct {
	RoomID  string   `json:"room_id" validate:"required"`
	Persons int      `json:"persons" validate:"required,min=1"`
	Amount  *float64 `json:"amount"  validate:"omitempty,gt=0"`
}

type CreateBookingsRequest struct {
	Rooms         []RoomSelection `json:"rooms"          validate:"required,min=1,dive"`
	GuestName     string          `json:"guest_name"     validate:"required,max=100"`
	CustomerPhone string          `json:"customer_phone" validate:"required,max=20"`
	IDProof       string          `json:"id_proof"       validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	CommonAmount  *float64        `json:"common_amount"  validate:"omitempty,gt=0"`
}

// AmountFor resolves the amount for one selected room: the per-room amount
// wins, the shared common amount is the fallback. Neither present is a
// validation failure caught before any write happens.
func (c *CreateBookingsRequest) AmountFor(sel RoomSelection) (float64, error) {
	if sel.Amount != nil {
		return *sel.Amount, nil
	}

	if c.CommonAmount != nil {
		return *c.CommonAmount, nil
	}

	return 0, failure.BadRequestFromString("amount is required for every selected room") // nolint:wrapcheck
}

func (c *CreateBookingsRequest) ToModel(sel RoomSelection, roomNo string, amount float64, checkIn time.Time, user string) model.Booking {
	return model.Booking{
		ID:            uuid.NewString(),
		RoomID:        sel.RoomID,
		RoomNo:        roomNo,
		GuestName:     c.GuestName,
		CustomerPhone: c.CustomerPhone,
		Persons:       sel.Persons,
		IDProof:       c.IDProof,
		Amount:        amount,
		CheckIn:       checkIn,
		CheckOut:      nil,
		Status:        model.StatusActive,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type ExtendBookingRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type CheckoutBookingRequest struct {
	// Retroactive closes the stay at its computed cycle boundary instead of
	// now, for guests who vacated before staff noticed.
	Retroactive bool `json:"retroactive"`
}

type BookingResponse struct {
	ID            string  `json:"id"`
	RoomID        string  `json:"room_id"`
	RoomNo        string  `json:"room_no"`
	GuestName     string  `json:"guest_name"`
	CustomerPhone string  `json:"customer_phone"`
	Persons       int     `json:"persons"`
	IDProof       string  `json:"id_proof,omitempty"`
	Amount        float64 `json:"amount"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out,omitempty"`
	Status        string  `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.RoomID = mod.RoomID
	r.RoomNo = mod.RoomNo
	r.GuestName = mod.GuestName
	r.CustomerPhone = mod.CustomerPhone
	r.Persons = mod.Persons
	r.IDProof = mod.IDProof
	r.Amount = mod.Amount
	r.CheckIn = timezone.Format(mod.CheckIn, constant.DateFormat)

	if mod.CheckOut != nil {
		r.CheckOut = timezone.Format(*mod.CheckOut, constant.DateFormat)
	}

	r.Status = mod.Status
	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// ActiveBookingResponse augments a booking with its cycle state, evaluated
// at request time rather than cached.
type ActiveBookingResponse struct {
	BookingResponse
	CycleEnd string `json:"cycle_end"`
	Overdue  bool   `json:"overdue"`
}

func (r *ActiveBookingResponse) FromModel(mod model.Booking, cycleStartHour int, now time.Time) {
	r.BookingResponse.FromModel(mod)

	boundary := model.CycleEnd(mod.CheckIn, cycleStartHour)
	r.CycleEnd = timezone.Format(boundary, constant.DateFormat)
	r.Overdue = model.Overdue(now, boundary)
}

type GetActiveBookingsResponse struct {
	Bookings  []ActiveBookingResponse `json:"bookings"`
	TotalPage int                     `json:"total_page"`
	TotalData int                     `json:"total_data"`
}

func (r *GetActiveBookingsResponse) FromModels(models []model.Booking, totalData, limit, cycleStartHour int, now time.Time) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]ActiveBookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod, cycleStartHour, now)
	}
}

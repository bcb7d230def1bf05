package dto_test

import (
	"net/http"
	"testing"
	"time"

	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/shared/failure"

	"github.com/stretchr/testify/assert"
)

func float64Ptr(v float64) *float64 {
	return &v
}

func TestAmountFor(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.CreateBookingsRequest
		sel      dto.RoomSelection
		want     float64
		wantErr  bool
		wantCode int
	}{
		{
			name: "per-room amount wins over common amount",
			req:  dto.CreateBookingsRequest{CommonAmount: float64Ptr(1000)},
			sel:  dto.RoomSelection{Amount: float64Ptr(1500)},
			want: 1500,
		},
		{
			name: "common amount is the fallback",
			req:  dto.CreateBookingsRequest{CommonAmount: float64Ptr(1000)},
			sel:  dto.RoomSelection{},
			want: 1000,
		},
		{
			name:     "neither amount is a bad request",
			req:      dto.CreateBookingsRequest{},
			sel:      dto.RoomSelection{},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.req.AmountFor(test.sel)

			if test.wantErr {
				assert.Error(t, err)
				assert.Equal(t, test.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestCreateBookingsRequestToModel(t *testing.T) {
	req := dto.CreateBookingsRequest{
		GuestName:     "John Doe",
		CustomerPhone: "9876543210",
		IDProof:       "data:image/png;base64,abc",
	}
	sel := dto.RoomSelection{RoomID: "room-1", Persons: 2}
	checkIn := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	booking := req.ToModel(sel, "101", 1200, checkIn, "admin-1")

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "room-1", booking.RoomID)
	assert.Equal(t, "101", booking.RoomNo)
	assert.Equal(t, "John Doe", booking.GuestName)
	assert.Equal(t, 2, booking.Persons)
	assert.Equal(t, float64(1200), booking.Amount)
	assert.True(t, booking.CheckIn.Equal(checkIn))
	assert.Nil(t, booking.CheckOut)
	assert.Equal(t, model.StatusActive, booking.Status)
	assert.Equal(t, "admin-1", booking.CreatedBy)
}

func TestActiveBookingResponseFromModel(t *testing.T) {
	checkIn := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	booking := model.Booking{
		ID:      "booking-1",
		RoomNo:  "101",
		CheckIn: checkIn,
		Status:  model.StatusActive,
	}

	var res dto.ActiveBookingResponse

	res.FromModel(booking, 12, time.Date(2026, 3, 11, 13, 0, 0, 0, time.UTC))

	assert.True(t, res.Overdue)
	assert.NotEmpty(t, res.CycleEnd)

	res = dto.ActiveBookingResponse{}
	res.FromModel(booking, 12, time.Date(2026, 3, 11, 11, 0, 0, 0, time.UTC))

	assert.False(t, res.Overdue)
}

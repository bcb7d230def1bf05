package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"lodge/config"
	"lodge/internal/domains/analytics/service"
	bookingMocks "lodge/internal/domains/booking/mocks"
	bookingModel "lodge/internal/domains/booking/model"
	roomMocks "lodge/internal/domains/room/mocks"
	cacheMocks "lodge/shared/cache/mocks"
	gDto "lodge/shared/dto"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/infras/otel/mocks"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return cfg
}

func TestGetSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockBookingRepo, mockRoomRepo, newConfig(), mockCache, mocks.NewOtel())

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	bookings := []bookingModel.Booking{
		{RoomNo: "101", Amount: 1000, CheckIn: from.Add(9 * time.Hour)},
		{RoomNo: "102", Amount: 2000, CheckIn: from.AddDate(0, 0, 1)},
		{RoomNo: "101", Amount: 1500, CheckIn: from.AddDate(0, 0, 2)},
	}

	var rangeFilter gDto.FilterGroup

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	mockBookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]bookingModel.Booking, error) {
			rangeFilter = filter

			return bookings, nil
		})
	mockRoomRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := svc.GetSummary(context.Background(), from, to)

	assert.NoError(t, err)
	assert.Equal(t, 3, res.TotalBookings)
	assert.Equal(t, float64(4500), res.TotalRevenue)
	assert.InDelta(t, 20.0, res.OccupancyRate, 0.001)

	// The range filter covers the whole last day, not just its midnight.
	_, args := rangeFilter.GetWhereClause()
	rangeEnd, _ := args["check_in_to"].(time.Time)
	assert.True(t, rangeEnd.After(to))
	assert.True(t, rangeEnd.Before(to.AddDate(0, 0, 1)))
}

func TestGetRoomPerformance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockBookingRepo, mockRoomRepo, newConfig(), mockCache, mocks.NewOtel())

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	mockBookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]bookingModel.Booking{
			{RoomNo: "101", Amount: 1000, CheckIn: from},
			{RoomNo: "102", Amount: 3000, CheckIn: from},
		}, nil)
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := svc.GetRoomPerformance(context.Background(), from, to)

	assert.NoError(t, err)
	assert.Len(t, res.Rooms, 2)
	assert.Equal(t, "102", res.Rooms[0].RoomNo)
}

func TestGetTrend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockBookingRepo, mockRoomRepo, newConfig(), mockCache, mocks.NewOtel())

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	mockBookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]bookingModel.Booking{
			{Amount: 1000, CheckIn: from},
			{Amount: 2000, CheckIn: from.AddDate(0, 0, 2)},
		}, nil)
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := svc.GetTrend(context.Background(), from, to)

	assert.NoError(t, err)
	assert.Len(t, res.Points, 2)
	assert.Equal(t, "2026-03-01", res.Points[0].Date)
}

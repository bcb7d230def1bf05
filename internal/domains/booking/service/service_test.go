package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"lodge/config"
	"lodge/infras/postgres"
	bookingMocks "lodge/internal/domains/booking/mocks"
	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/internal/domains/booking/service"
	roomMocks "lodge/internal/domains/room/mocks"
	roomModel "lodge/internal/domains/room/model"
	eventMocks "lodge/internal/events/mocks"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	gModel "lodge/shared/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodge/infras/otel/mocks"
)

func float64Ptr(v float64) *float64 {
	return &v
}

func newTestDB(t *testing.T) (*postgres.Connection, sqlmock.Sqlmock) {
	t.Helper()

	db, mockSQL, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")

	return &postgres.Connection{Read: sqlxDB, Write: sqlxDB}, mockSQL
}

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.CycleStartHour = 12

	return cfg
}

func TestBookingCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)

	conn, mockSQL := newTestDB(t)

	svc := service.New(mockRepo, mockRoomRepo, conn, newConfig(), mockCache, mocks.NewOtel(), mockPublisher)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	availableRoom := roomModel.Room{ID: "room-1", RoomNo: "101", RoomType: roomModel.TypeAC, Status: roomModel.StatusAvailable}
	bookedRoom := roomModel.Room{ID: "room-2", RoomNo: "102", RoomType: roomModel.TypeAC, Status: roomModel.StatusBooked}

	tests := []struct {
		name      string
		req       dto.CreateBookingsRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "single room booked successfully",
			req: dto.CreateBookingsRequest{
				Rooms:        []dto.RoomSelection{{RoomID: "room-1", Persons: 2}},
				GuestName:    "John Doe",
				CommonAmount: float64Ptr(1200),
			},
			setupMock: func() {
				mockSQL.ExpectBegin()
				mockRoomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(availableRoom, nil)
				mockRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				mockRoomRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				mockSQL.ExpectCommit()
				mockPublisher.EXPECT().PublishBookingEvent(gomock.Any(), gomock.Any(), gomock.Any())
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "second room unavailable rolls everything back",
			req: dto.CreateBookingsRequest{
				Rooms: []dto.RoomSelection{
					{RoomID: "room-1", Persons: 2},
					{RoomID: "room-2", Persons: 1},
				},
				GuestName:    "John Doe",
				CommonAmount: float64Ptr(1200),
			},
			setupMock: func() {
				mockSQL.ExpectBegin()
				mockRoomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(availableRoom, nil)
				mockRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				mockRoomRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				mockRoomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookedRoom, nil)
				mockSQL.ExpectRollback()
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "unknown room is not found",
			req: dto.CreateBookingsRequest{
				Rooms:        []dto.RoomSelection{{RoomID: "missing", Persons: 1}},
				GuestName:    "John Doe",
				CommonAmount: float64Ptr(1200),
			},
			setupMock: func() {
				mockSQL.ExpectBegin()
				mockRoomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
				mockSQL.ExpectRollback()
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "missing amount fails before the transaction opens",
			req: dto.CreateBookingsRequest{
				Rooms:     []dto.RoomSelection{{RoomID: "room-1", Persons: 1}},
				GuestName: "John Doe",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test.setupMock()

			err := svc.Create(ctx, test.req)

			if test.wantErr {
				assert.Error(t, err)
				assert.Equal(t, test.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestBookingExtend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)

	conn, mockSQL := newTestDB(t)

	svc := service.New(mockRepo, mockRoomRepo, conn, newConfig(), mockCache, mocks.NewOtel(), mockPublisher)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	checkIn := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	boundary := model.CycleEnd(checkIn, 12)

	active := model.Booking{
		ID:      "booking-1",
		RoomID:  "room-1",
		RoomNo:  "101",
		CheckIn: checkIn,
		Amount:  1200,
		Status:  model.StatusActive,
		Metadata: gModel.Metadata{
			CreatedBy: "admin-1",
		},
	}

	t.Run("active booking is extended into a successor cycle", func(t *testing.T) {
		var oldUpdate map[string]any

		var successor model.Booking

		mockSQL.ExpectBegin()
		mockRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(active, nil)
		mockRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, req map[string]any, _ any) error {
				oldUpdate = req

				return nil
			})
		mockRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, mod model.Booking) error {
				successor = mod

				return nil
			})
		mockSQL.ExpectCommit()
		mockPublisher.EXPECT().PublishBookingEvent(gomock.Any(), gomock.Any(), gomock.Any())
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Extend(ctx, active.ID, dto.ExtendBookingRequest{Amount: 1500})

		assert.NoError(t, err)
		assert.Equal(t, model.StatusExtended, oldUpdate[model.FieldStatus])
		assert.Equal(t, boundary, oldUpdate[model.FieldCheckOut])

		assert.NotEqual(t, active.ID, successor.ID)
		assert.True(t, successor.CheckIn.Equal(boundary))
		assert.Nil(t, successor.CheckOut)
		assert.Equal(t, float64(1500), successor.Amount)
		assert.Equal(t, model.StatusActive, successor.Status)
		assert.Equal(t, active.RoomID, successor.RoomID)
	})

	t.Run("completed booking cannot be extended", func(t *testing.T) {
		completed := active
		completed.Status = model.StatusCompleted

		mockSQL.ExpectBegin()
		mockRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(completed, nil)
		mockSQL.ExpectRollback()

		err := svc.Extend(ctx, active.ID, dto.ExtendBookingRequest{Amount: 1500})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("missing booking is not found", func(t *testing.T) {
		mockSQL.ExpectBegin()
		mockRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
		mockSQL.ExpectRollback()

		err := svc.Extend(ctx, "missing", dto.ExtendBookingRequest{Amount: 1500})

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingCheckout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)

	conn, mockSQL := newTestDB(t)

	svc := service.New(mockRepo, mockRoomRepo, conn, newConfig(), mockCache, mocks.NewOtel(), mockPublisher)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	checkIn := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	boundary := model.CycleEnd(checkIn, 12)

	active := model.Booking{
		ID:      "booking-1",
		RoomID:  "room-1",
		RoomNo:  "101",
		CheckIn: checkIn,
		Amount:  1200,
		Status:  model.StatusActive,
	}

	t.Run("immediate checkout completes the booking and frees the room", func(t *testing.T) {
		var bookingUpdate map[string]any

		var roomUpdate map[string]any

		mockSQL.ExpectBegin()
		mockRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(active, nil)
		mockRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, req map[string]any, _ any) error {
				bookingUpdate = req

				return nil
			})
		mockRoomRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, req map[string]any, _ any) error {
				roomUpdate = req

				return nil
			})
		mockSQL.ExpectCommit()
		mockPublisher.EXPECT().PublishBookingEvent(gomock.Any(), gomock.Any(), gomock.Any())
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Checkout(ctx, active.ID, dto.CheckoutBookingRequest{})

		assert.NoError(t, err)
		assert.Equal(t, model.StatusCompleted, bookingUpdate[model.FieldStatus])
		assert.NotEqual(t, boundary, bookingUpdate[model.FieldCheckOut])
		assert.Equal(t, roomModel.StatusAvailable, roomUpdate[roomModel.FieldStatus])
	})

	t.Run("retroactive checkout closes the stay at the cycle boundary", func(t *testing.T) {
		var bookingUpdate map[string]any

		mockSQL.ExpectBegin()
		mockRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(active, nil)
		mockRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, req map[string]any, _ any) error {
				bookingUpdate = req

				return nil
			})
		mockRoomRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		mockSQL.ExpectCommit()
		mockPublisher.EXPECT().PublishBookingEvent(gomock.Any(), gomock.Any(), gomock.Any())
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Checkout(ctx, active.ID, dto.CheckoutBookingRequest{Retroactive: true})

		assert.NoError(t, err)
		assert.Equal(t, boundary, bookingUpdate[model.FieldCheckOut])
	})

	t.Run("extended booking cannot be checked out", func(t *testing.T) {
		extended := active
		extended.Status = model.StatusExtended

		mockSQL.ExpectBegin()
		mockRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(extended, nil)
		mockSQL.ExpectRollback()

		err := svc.Checkout(ctx, active.ID, dto.CheckoutBookingRequest{})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestBookingGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)

	conn, _ := newTestDB(t)

	svc := service.New(mockRepo, mockRoomRepo, conn, newConfig(), mockCache, mocks.NewOtel(), mockPublisher)

	t.Run("missing booking is not found", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("found booking is returned and cached", func(t *testing.T) {
		booking := model.Booking{ID: "booking-1", RoomNo: "101", Status: model.StatusActive, CheckIn: time.Now()}

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.Get(context.Background(), "booking-1")

		assert.NoError(t, err)
		assert.Equal(t, "booking-1", res.ID)
		assert.Equal(t, "101", res.RoomNo)
	})
}

func TestBookingGetActive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)

	conn, _ := newTestDB(t)

	svc := service.New(mockRepo, mockRoomRepo, conn, newConfig(), mockCache, mocks.NewOtel(), mockPublisher)

	overdueCheckIn := time.Now().Add(-48 * time.Hour)

	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Booking{{ID: "booking-1", CheckIn: overdueCheckIn, Status: model.StatusActive}}, nil)

	res, err := svc.GetActive(context.Background(), gDto.QueryParams{Limit: 10})

	assert.NoError(t, err)
	assert.Len(t, res.Bookings, 1)
	assert.True(t, res.Bookings[0].Overdue)
}

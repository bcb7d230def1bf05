package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"lodge/config"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/internal/domains/booking/repository"
	roomModel "lodge/internal/domains/room/model"
	roomRepo "lodge/internal/domains/room/repository"
	"lodge/internal/events"
	"lodge/internal/metrics"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	cacheRoomPrefix = "room"
)

const (
	checkoutVariantImmediate   = "immediate"
	checkoutVariantRetroactive = "retroactive"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingsRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetActive(ctx context.Context, req gDto.QueryParams) (dto.GetActiveBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Extend(ctx context.Context, id string, req dto.ExtendBookingRequest) error
	Checkout(ctx context.Context, id string, req dto.CheckoutBookingRequest) error
}

type serviceImpl struct {
	repo      repository.Booking
	roomRepo  roomRepo.Room
	db        *postgres.Connection
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	publisher events.Publisher
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	db *postgres.Connection,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	publisher events.Publisher,
) Booking {
	return &serviceImpl{
		repo:      repo,
		roomRepo:  roomRepo,
		db:        db,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		publisher: publisher,
	}
}

// Create reserves every selected room for the guest in one transaction.
// Each room row is locked and re-checked inside the transaction, so either
// all bookings are created and all rooms flipped to Booked, or none are.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingsRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	// Resolve amounts up front so validation failures never open a transaction.
	amounts := make([]float64, len(req.Rooms))
	for i, sel := range req.Rooms {
		amounts[i], err = req.AmountFor(sel)
		if err != nil {
			return err
		}
	}

	checkIn := timezone.Now()
	created := make([]model.Booking, 0, len(req.Rooms))
	roomTypes := make([]string, 0, len(req.Rooms))

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		for i, sel := range req.Rooms {
			room, err := s.roomRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(sel.RoomID, roomModel.FieldID, roomModel.TableName))
			if err != nil {
				log.Error().Err(err).Str("roomID", sel.RoomID).Msg("failed to lock room")

				return fmt.Errorf("failed to lock room: %w", err)
			}

			if room.ID == constant.Empty {
				return failure.NotFound("room not found") // nolint:wrapcheck
			}

			if room.Status != roomModel.StatusAvailable {
				return failure.Conflict(fmt.Sprintf("room %s is no longer available", room.RoomNo)) // nolint:wrapcheck
			}

			booking := req.ToModel(sel, room.RoomNo, amounts[i], checkIn, user)

			if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
				return err
			}

			err = s.roomRepo.UpdateTx(ctx, tx, map[string]any{
				roomModel.FieldStatus:    roomModel.StatusBooked,
				constant.FieldModifiedAt: timezone.Now(),
				constant.FieldModifiedBy: user,
			}, shared.FilterByID(room.ID, roomModel.FieldID, roomModel.TableName))
			if err != nil {
				return err
			}

			created = append(created, booking)
			roomTypes = append(roomTypes, room.RoomType)
		}

		return nil
	})
	if err != nil {
		return err
	}

	for i, booking := range created {
		metrics.IncBookingCreated(roomTypes[i])
		s.publisher.PublishBookingEvent(ctx, events.TypeBookingCreated, events.BookingEvent{
			BookingID: booking.ID,
			RoomID:    booking.RoomID,
			RoomNo:    booking.RoomNo,
			GuestName: booking.GuestName,
			Amount:    booking.Amount,
		})
	}

	s.invalidateListCaches(ctx)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// GetActive lists current stays with their cycle boundary and overdue flag.
// The overdue flag depends on the wall clock, so this listing is never cached.
func (s *serviceImpl) GetActive(ctx context.Context, req gDto.QueryParams) (res dto.GetActiveBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetActive")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusActive, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count active bookings")

		return res, fmt.Errorf("failed to count active bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get active bookings")

		return res, fmt.Errorf("failed to get active bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit, s.cfg.Booking.CycleStartHour, timezone.Now())

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Extend closes the current cycle at its boundary and opens a successor
// booking back-to-back, in one transaction. The room stays Booked; extension
// never touches room inventory.
func (s *serviceImpl) Extend(ctx context.Context, id string, req dto.ExtendBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Extend")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var extended model.Booking

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		old, err := s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Str("bookingID", id).Msg("failed to lock booking")

			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if old.ID == constant.Empty {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		if old.Status != model.StatusActive {
			return failure.BadRequestFromString("only an active booking can be extended") // nolint:wrapcheck
		}

		boundary := model.CycleEnd(old.CheckIn, s.cfg.Booking.CycleStartHour)

		err = s.repo.UpdateTx(ctx, tx, map[string]any{
			model.FieldCheckOut:      boundary,
			model.FieldStatus:        model.StatusExtended,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}, shared.FilterByID(old.ID, model.FieldID, model.TableName))
		if err != nil {
			return err
		}

		successor := old
		successor.ID = uuid.NewString()
		successor.CheckIn = boundary
		successor.CheckOut = nil
		successor.Amount = req.Amount
		successor.Status = model.StatusActive
		successor.Metadata = gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		}

		if err := s.repo.InsertTx(ctx, tx, successor); err != nil {
			return err
		}

		extended = successor

		return nil
	})
	if err != nil {
		return err
	}

	metrics.IncBookingExtended()
	s.publisher.PublishBookingEvent(ctx, events.TypeBookingExtended, events.BookingEvent{
		BookingID: extended.ID,
		RoomID:    extended.RoomID,
		RoomNo:    extended.RoomNo,
		GuestName: extended.GuestName,
		Amount:    extended.Amount,
	})

	s.invalidateListCaches(ctx)
	s.invalidateBookingCache(ctx, id)

	return nil
}

// Checkout completes the stay and frees the room in one transaction, so the
// booking can never end up closed while the room stays Booked.
func (s *serviceImpl) Checkout(ctx context.Context, id string, req dto.CheckoutBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Checkout")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var completed model.Booking

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, err := s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Str("bookingID", id).Msg("failed to lock booking")

			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		if booking.Status != model.StatusActive {
			return failure.BadRequestFromString("only an active booking can be checked out") // nolint:wrapcheck
		}

		checkOut := timezone.Now()
		if req.Retroactive {
			checkOut = model.CycleEnd(booking.CheckIn, s.cfg.Booking.CycleStartHour)
		}

		err = s.repo.UpdateTx(ctx, tx, map[string]any{
			model.FieldCheckOut:      checkOut,
			model.FieldStatus:        model.StatusCompleted,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}, shared.FilterByID(booking.ID, model.FieldID, model.TableName))
		if err != nil {
			return err
		}

		// The room may have been deleted while the stay was active; freeing
		// a missing room is a no-op, not an error.
		err = s.roomRepo.UpdateTx(ctx, tx, map[string]any{
			roomModel.FieldStatus:    roomModel.StatusAvailable,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return err
		}

		completed = booking

		return nil
	})
	if err != nil {
		return err
	}

	variant := checkoutVariantImmediate
	if req.Retroactive {
		variant = checkoutVariantRetroactive
	}

	metrics.IncBookingCheckedOut(variant)
	s.publisher.PublishBookingEvent(ctx, events.TypeBookingCheckedOut, events.BookingEvent{
		BookingID: completed.ID,
		RoomID:    completed.RoomID,
		RoomNo:    completed.RoomNo,
		GuestName: completed.GuestName,
		Amount:    completed.Amount,
	})

	s.invalidateListCaches(ctx)
	s.invalidateBookingCache(ctx, id)

	return nil
}

func (s *serviceImpl) invalidateListCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, cacheRoomPrefix)
	}()
}

func (s *serviceImpl) invalidateBookingCache(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}
	}()
}

package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"lodge/config"
	"lodge/infras/otel"
	"lodge/internal/domains/analytics/model"
	"lodge/internal/domains/analytics/model/dto"
	bookingModel "lodge/internal/domains/booking/model"
	bookingRepo "lodge/internal/domains/booking/repository"
	roomRepo "lodge/internal/domains/room/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"

	"github.com/rs/zerolog/log"
)

const (
	cacheSummary     = "analytics:summary"
	cachePerformance = "analytics:performance"
	cacheTrend       = "analytics:trend"
)

type Analytics interface {
	GetSummary(ctx context.Context, from, to time.Time) (dto.SummaryResponse, error)
	GetRoomPerformance(ctx context.Context, from, to time.Time) (dto.GetRoomPerformanceResponse, error)
	GetTrend(ctx context.Context, from, to time.Time) (dto.GetTrendResponse, error)
}

type serviceImpl struct {
	bookingRepo bookingRepo.Booking
	roomRepo    roomRepo.Room
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(bookingRepo bookingRepo.Booking, roomRepo roomRepo.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Analytics {
	return &serviceImpl{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// bookingsInRange fetches every booking whose check-in falls in [from, to].
// The range end is pushed to the end of its calendar day so a date-only "to"
// still covers bookings made that afternoon.
func (s *serviceImpl) bookingsInRange(ctx context.Context, from, to time.Time) ([]bookingModel.Booking, error) {
	rangeEnd := to.AddDate(0, 0, 1).Add(-time.Nanosecond)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				ArgName:  "check_in_from",
				Field:    bookingModel.FieldCheckIn,
				Value:    from,
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				ArgName:  "check_in_to",
				Field:    bookingModel.FieldCheckIn,
				Value:    rangeEnd,
				Operator: gDto.FilterOperatorLessEq,
				Table:    bookingModel.TableName,
			},
		},
	}

	models, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{
		SortBy:  bookingModel.FieldCheckIn,
		SortDir: "ASC",
	}, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings in range: %w", err)
	}

	return models, nil
}

func (s *serviceImpl) GetSummary(ctx context.Context, from, to time.Time) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetSummary")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheSummary, from.Format(constant.DateOnlyFormat), to.Format(constant.DateOnlyFormat))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for analytics summary")

		return res, nil
	}

	bookings, err := s.bookingsInRange(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for summary")

		return res, err
	}

	roomCount, err := s.roomRepo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms for summary")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	res.FromKPI(model.Summarize(bookings, roomCount, from, to))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save analytics summary to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetRoomPerformance(ctx context.Context, from, to time.Time) (res dto.GetRoomPerformanceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRoomPerformance")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cachePerformance, from.Format(constant.DateOnlyFormat), to.Format(constant.DateOnlyFormat))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room performance")

		return res, nil
	}

	bookings, err := s.bookingsInRange(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for room performance")

		return res, err
	}

	res.FromModels(model.PerRoom(bookings))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room performance to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetTrend(ctx context.Context, from, to time.Time) (res dto.GetTrendResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetTrend")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheTrend, from.Format(constant.DateOnlyFormat), to.Format(constant.DateOnlyFormat))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for revenue trend")

		return res, nil
	}

	bookings, err := s.bookingsInRange(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for revenue trend")

		return res, err
	}

	res.FromModels(model.Trend(bookings))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save revenue trend to cache")
		}
	}()

	return res, nil
}

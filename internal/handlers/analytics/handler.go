package analytics

import (
	"net/http"
	"time"

	"lodge/infras/otel"
	"lodge/internal/domains/analytics/service"
	"lodge/shared/constant"
	"lodge/shared/failure"
	"lodge/shared/timezone"
	"lodge/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const defaultRangeDays = 30

type Handler struct {
	service service.Analytics
	otel    otel.Otel
}

func New(service service.Analytics, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/analytics", func(routerGroup chi.Router) {
		routerGroup.Get("/summary", handler.GetSummary)
		routerGroup.Get("/performance", handler.GetRoomPerformance)
		routerGroup.Get("/trend", handler.GetTrend)
	})
}

// dateRange reads from/to query params as dates; absent values default to
// the last 30 days ending today.
func dateRange(r *http.Request) (time.Time, time.Time, error) {
	now := timezone.Now()
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from := to.AddDate(0, 0, -defaultRangeDays)

	if raw := r.URL.Query().Get(constant.RequestParamFrom); raw != constant.Empty {
		parsed, err := timezone.Parse(constant.DateOnlyFormat, raw)
		if err != nil {
			return from, to, failure.BadRequestFromString("invalid from date, expected YYYY-MM-DD") // nolint:wrapcheck
		}

		from = parsed
	}

	if raw := r.URL.Query().Get(constant.RequestParamTo); raw != constant.Empty {
		parsed, err := timezone.Parse(constant.DateOnlyFormat, raw)
		if err != nil {
			return from, to, failure.BadRequestFromString("invalid to date, expected YYYY-MM-DD") // nolint:wrapcheck
		}

		to = parsed
	}

	if to.Before(from) {
		return from, to, failure.BadRequestFromString("to date must not be before from date") // nolint:wrapcheck
	}

	return from, to, nil
}

func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	from, to, err := dateRange(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	summary, err := handler.service.GetSummary(ctx, from, to)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get analytics summary")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Analytics summary retrieved successfully")

	response.WithJSON(w, http.StatusOK, summary)
}

func (handler *Handler) GetRoomPerformance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomPerformance")
	defer scope.End()

	from, to, err := dateRange(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	performance, err := handler.service.GetRoomPerformance(ctx, from, to)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room performance")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room performance retrieved successfully")

	response.WithJSON(w, http.StatusOK, performance)
}

func (handler *Handler) GetTrend(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTrend")
	defer scope.End()

	from, to, err := dateRange(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	trend, err := handler.service.GetTrend(ctx, from, to)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get revenue trend")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Revenue trend retrieved successfully")

	response.WithJSON(w, http.StatusOK, trend)
}

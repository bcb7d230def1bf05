package health

import (
	"net/http"

	"lodge/infras/postgres"
	"lodge/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	db *postgres.Connection
}

func New(db *postgres.Connection) Handler {
	return Handler{db: db}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
}

// Health reports liveness; the database ping doubles as a readiness check.
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if handler.db != nil {
		if err := handler.db.Read.PingContext(r.Context()); err != nil {
			response.WithUnhealthy(w)

			return
		}
	}

	response.WithMessage(w, http.StatusOK, "OK")
}

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Leyinc1/manuelbest/internal/http/v1/response"
	"github.com/Leyinc1/manuelbest/internal/lib/logger/sl"
)

const pingTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db  Pinger
	log *slog.Logger
}

// NewHealthHandler accepts a nil pinger, in which case only liveness is reported.
func NewHealthHandler(db Pinger, log *slog.Logger) *HealthHandler {
	return &HealthHandler{
		db:  db,
		log: log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	const op = "handler.health.Health"

	log := h.log.With(slog.String("op", op))

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			log.Error("database ping failed", sl.Err(err))
			response.Error(w, log, http.StatusServiceUnavailable, "database unavailable", nil)
			return
		}
	}

	response.JSON(w, log, http.StatusOK, response.MessageResponse{Message: "API is running."})
}
